package file_store

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Shared Func type for file stores
type CustomizeFileNameFuncType func(fileName string) string

// FileStore persists uploaded files and tells where they can be downloaded.
type FileStore interface {
	Store(ctx context.Context, fileName string, body io.Reader) (key string, err error)
	GetUrlFromKey(key string) string
	CleanUp()
}

// GetExtNameWithDot returns the lower cased extension of fileName, e.g. ".png".
func GetExtNameWithDot(fileName string) string {
	return strings.ToLower(filepath.Ext(fileName))
}

// defaultKey keeps only the extension of the uploaded name, so that user
// provided names never reach the storage path.
func defaultKey(fileName string) string {
	return uuid.New().String() + GetExtNameWithDot(fileName)
}
