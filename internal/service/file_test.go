package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_backoffice/internal/codes"
)

func newFileService(t *testing.T) *FileService {
	t.Helper()
	return NewFileService(newTestDB(t), 1<<20, testLogger())
}

func TestUploadAndGetImage(t *testing.T) {
	svc := newFileService(t)
	ctx := context.Background()

	id, err := svc.UploadBytes(ctx, "thumb.png", "image/png", []byte("png-bytes"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	img, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
	assert.True(t, bytes.Equal([]byte("png-bytes"), img.Data))
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	svc := newFileService(t)

	_, err := svc.UploadBytes(context.Background(), "doc.pdf", "application/pdf", []byte("%PDF"))
	assert.Equal(t, codes.Error, domainCode(t, err))
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	svc := newFileService(t)

	_, err := svc.UploadBytes(context.Background(), "empty.png", "image/png", nil)
	assert.Equal(t, codes.Error, domainCode(t, err))
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	db := newTestDB(t)
	svc := NewFileService(db, 8, testLogger())

	fh := testFileHeader(t, "big.png", "image/png", []byte("123456789"))
	_, err := svc.Upload(context.Background(), fh)
	assert.Equal(t, codes.Error, domainCode(t, err))
}

func TestUploadFromMultipartHeader(t *testing.T) {
	svc := newFileService(t)
	ctx := context.Background()

	fh := testFileHeader(t, "thumb.webp", "image/webp", []byte("webp-bytes"))
	id, err := svc.Upload(ctx, fh)
	require.NoError(t, err)

	img, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "image/webp", img.ContentType)
	assert.Equal(t, "thumb.webp", img.FileName)
}

func TestDeleteImage(t *testing.T) {
	svc := newFileService(t)
	ctx := context.Background()

	id, err := svc.UploadBytes(ctx, "thumb.png", "image/png", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, id))
	_, err = svc.Get(ctx, id)
	assert.Equal(t, codes.EntityNotExist, domainCode(t, err))

	// 删除不存在的图片视为成功
	assert.NoError(t, svc.Delete(ctx, "missing"))
	assert.NoError(t, svc.Delete(ctx, ""))
}
