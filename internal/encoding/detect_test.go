package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/revrec/internal/encoding"
)

func TestNewUTF8Reader(t *testing.T) {
	const clause = "Société Générale — Clause 4.2: €12,500 payable à la signature\n"

	// "Cláusula de pagamento\n" in Windows-1252: á = 0xE1.
	latin1 := []byte{'C', 'l', 0xE1, 'u', 's', 'u', 'l', 'a', ' ', 'd', 'e', ' ',
		'p', 'a', 'g', 'a', 'm', 'e', 'n', 't', 'o', '\n'}

	type testCase struct {
		name        string
		input       []byte
		want        string
		wantCharset string
	}

	tests := []testCase{
		{
			name:        "utf-8 passthrough",
			input:       []byte(clause),
			want:        clause,
			wantCharset: encoding.UTF8,
		},
		{
			name:        "utf-8 bom stripped",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, []byte(clause)...),
			want:        clause,
			wantCharset: encoding.UTF8,
		},
		{
			name:        "utf-16le with bom",
			input:       []byte{0xFF, 0xFE, 'T', 0x00, 'e', 0x00, 'r', 0x00, 'm', 0x00},
			want:        "Term",
			wantCharset: encoding.UTF16LE,
		},
		{
			name:  "windows-1252",
			input: latin1,
			want:  "Cláusula de pagamento\n",
			// chardet may call this ISO-8859-1 or ISO-8859-9; both decode it the same.
		},
		{
			name:        "empty",
			input:       nil,
			want:        "",
			wantCharset: encoding.UTF8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, charset, err := encoding.NewUTF8Reader(bytes.NewReader(tt.input))
			require.NoError(t, err)

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
			if tt.wantCharset != "" {
				assert.Equal(t, tt.wantCharset, charset)
			}
		})
	}
}

func TestNewUTF8Reader_RuneAcrossSniffWindow(t *testing.T) {
	// Push a multi-byte rune across the 4096-byte peek boundary.
	input := strings.Repeat("a", 4095) + "é" + strings.Repeat("b", 10)

	got, charset, err := encoding.ToUTF8([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, encoding.UTF8, charset)
	assert.Equal(t, input, string(got))
}
