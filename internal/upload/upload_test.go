package upload_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/revrec/internal/api"
	"github.com/MrJamesThe3rd/revrec/internal/upload"
)

func TestValidate(t *testing.T) {
	type args struct {
		name        string
		contentType string
		size        int64
	}

	type testCase struct {
		name    string
		args    args
		wantErr string
	}

	tests := []testCase{
		{
			name: "pdf by type and extension",
			args: args{name: "contract.pdf", contentType: "application/pdf", size: 1024},
		},
		{
			name: "markdown extension with unknown type",
			args: args{name: "CONTRACT.MD", contentType: "", size: 2048},
		},
		{
			name: "docx type with odd extension",
			args: args{name: "contract.bin", contentType: upload.DocxType, size: 2048},
		},
		{
			name: "x-markdown type without extension",
			args: args{name: "contract", contentType: "text/x-markdown", size: 10},
		},
		{
			name:    "executable",
			args:    args{name: "setup.exe", contentType: "application/x-msdownload", size: 2048},
			wantErr: "Please upload a PDF, Word document, Markdown, or text file. Detected: application/x-msdownload",
		},
		{
			name:    "no type and no extension",
			args:    args{name: "README", size: 10},
			wantErr: "Please upload a PDF, Word document, Markdown, or text file. Detected: unknown type",
		},
		{
			name: "exactly ten megabytes",
			args: args{name: "big.pdf", contentType: "application/pdf", size: upload.MaxFileSize},
		},
		{
			name:    "over ten megabytes",
			args:    args{name: "big.pdf", contentType: "application/pdf", size: upload.MaxFileSize + 1},
			wantErr: "File size must be less than 10MB.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := upload.Validate(tt.args.name, tt.args.contentType, tt.args.size)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			var verr *upload.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantErr, verr.Message)
		})
	}
}

func TestValidate_Properties(t *testing.T) {
	goodTypes := []string{"application/pdf", "text/plain", "text/markdown", "text/x-markdown", "application/markdown", "application/msword", upload.DocxType}
	badTypes := []string{"", "image/png", "application/zip"}
	goodNames := []string{"a.pdf", "a.doc", "a.docx", "a.txt", "a.md", "A.Tar.PDF"}
	badNames := []string{"a", "a.exe", "a.md.zip", "a."}
	sizes := []int64{0, 1, upload.MaxFileSize}

	for _, size := range sizes {
		for _, name := range badNames {
			for _, ct := range badTypes {
				assert.Error(t, upload.Validate(name, ct, size), "%s %q", name, ct)
			}

			for _, ct := range goodTypes {
				assert.NoError(t, upload.Validate(name, ct, size), "%s %q", name, ct)
			}
		}

		for _, name := range goodNames {
			for _, ct := range append(badTypes, goodTypes...) {
				assert.NoError(t, upload.Validate(name, ct, size), "%s %q", name, ct)
			}
		}
	}

	for _, name := range goodNames {
		for _, ct := range goodTypes {
			assert.Error(t, upload.Validate(name, ct, upload.MaxFileSize+1))
		}
	}
}

func TestFlow_MarkdownScenario(t *testing.T) {
	ctrl := gomock.NewController(t)
	uploader := upload.NewMockUploader(ctrl)

	body := strings.Repeat("x", 2*1024)
	file := upload.FromBytes("contract.md", "", []byte(body))

	uploader.EXPECT().
		UploadContract(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f api.File) (*api.UploadResult, error) {
			assert.Equal(t, "contract.md", f.Name)
			return &api.UploadResult{Message: "Contract uploaded successfully."}, nil
		})

	var calls int

	var flow *upload.Flow
	flow = upload.NewFlow(uploader, 0, func(res *api.UploadResult) {
		calls++
		assert.Equal(t, upload.StatusUploading, flow.Status())
		assert.Equal(t, "Contract uploaded successfully.", res.Message)
	})

	require.NoError(t, flow.Submit(context.Background(), file))
	assert.Equal(t, upload.StatusSuccess, flow.Status())
	assert.Equal(t, 1, calls)

	flow.Reset()
	assert.Equal(t, upload.StatusIdle, flow.Status())
	assert.Nil(t, flow.Result())
}

func TestFlow_RejectsBeforeNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	uploader := upload.NewMockUploader(ctrl)
	uploader.EXPECT().UploadContract(gomock.Any(), gomock.Any()).Times(0)

	flow := upload.NewFlow(uploader, 0, func(*api.UploadResult) {
		t.Fatal("success callback must not run")
	})

	err := flow.Submit(context.Background(), upload.FromBytes("setup.exe", "application/x-msdownload", []byte("MZ")))
	require.Error(t, err)
	assert.Equal(t, upload.StatusError, flow.Status())
	assert.Contains(t, flow.Message(), "application/x-msdownload")
}

func TestFlow_UploadFailure(t *testing.T) {
	type testCase struct {
		name    string
		err     error
		wantMsg string
	}

	tests := []testCase{
		{
			name:    "api error",
			err:     &api.Error{Op: "Upload failed", StatusCode: 500, Status: "Internal Server Error"},
			wantMsg: "Upload failed: 500 Internal Server Error",
		},
		{
			name:    "error without message",
			err:     errors.New(""),
			wantMsg: "Upload failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			uploader := upload.NewMockUploader(ctrl)
			uploader.EXPECT().UploadContract(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			flow := upload.NewFlow(uploader, 0, nil)

			err := flow.Submit(context.Background(), upload.FromBytes("a.txt", "text/plain", []byte("hi")))
			require.Error(t, err)
			assert.Equal(t, upload.StatusError, flow.Status())
			assert.Equal(t, tt.wantMsg, flow.Message())
		})
	}
}

func TestFlow_BeginFinish(t *testing.T) {
	flow := upload.NewFlow(nil, 0, nil)

	require.True(t, flow.Begin(upload.FromBytes("a.pdf", "application/pdf", []byte("%PDF"))))
	assert.Equal(t, upload.StatusUploading, flow.Status())

	// A second file cannot start while the first is in flight, and Reset is ignored.
	assert.False(t, flow.Begin(upload.FromBytes("b.pdf", "application/pdf", nil)))
	flow.Reset()
	assert.Equal(t, upload.StatusUploading, flow.Status())

	flow.Finish(&api.UploadResult{Message: "ok"}, nil)
	assert.Equal(t, upload.StatusSuccess, flow.Status())
	assert.Equal(t, "ok", flow.Message())

	// Late results are ignored once the flow left uploading.
	flow.Finish(nil, errors.New("late"))
	assert.Equal(t, upload.StatusSuccess, flow.Status())
}

func TestFlow_CustomLimit(t *testing.T) {
	flow := upload.NewFlow(nil, 4, nil)

	assert.False(t, flow.Begin(upload.FromBytes("a.txt", "text/plain", []byte("hello"))))
	assert.Equal(t, upload.StatusError, flow.Status())
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()

	md := filepath.Join(dir, "contract.md")
	require.NoError(t, os.WriteFile(md, []byte("# Master Services Agreement\n\nTerm: 24 months.\n"), 0o644))

	file, f, err := upload.OpenFile(md)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	assert.Equal(t, "contract.md", file.Name)
	assert.Equal(t, "text/plain", file.ContentType)
	assert.NoError(t, upload.Validate(file.Name, file.ContentType, file.Size))

	exe := filepath.Join(dir, "setup.exe")
	require.NoError(t, os.WriteFile(exe, append([]byte("MZ"), make([]byte, 256)...), 0o644))

	file, f, err = upload.OpenFile(exe)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	err = upload.Validate(file.Name, file.ContentType, file.Size)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Detected: "+file.ContentType)

	_, _, err = upload.OpenFile(dir)
	assert.Error(t, err)
}
