package file_store

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LocalFileStore writes files into a folder that the api server exposes under
// urlPrefix.
type LocalFileStore struct {
	folderName            string
	urlPrefix             string
	customizeFileNameFunc CustomizeFileNameFuncType
}

func NewLocalFileStore(folderName, urlPrefix string) (*LocalFileStore, error) {
	if err := os.MkdirAll(folderName, os.ModePerm); err != nil {
		return nil, errors.Wrap(err, "create upload folder")
	}
	return &LocalFileStore{
		folderName: folderName,
		urlPrefix:  strings.TrimSuffix(urlPrefix, "/"),
	}, nil
}

func (s *LocalFileStore) SetCustomizeFileNameFunc(f CustomizeFileNameFuncType) {
	s.customizeFileNameFunc = f
}

func (s *LocalFileStore) FolderName() string {
	return s.folderName
}

func (s *LocalFileStore) Store(ctx context.Context, fileName string, body io.Reader) (string, error) {
	key := defaultKey(fileName)
	if s.customizeFileNameFunc != nil {
		key = s.customizeFileNameFunc(fileName)
	}
	if key == "" || strings.ContainsAny(key, `/\`) {
		return "", errors.Errorf("invalid file key %q", key)
	}

	f, err := os.Create(filepath.Join(s.folderName, key))
	if err != nil {
		return "", errors.Wrap(err, "create local file")
	}
	defer f.Close()
	if _, err := io.Copy(f, body); err != nil {
		return "", errors.Wrap(err, "write local file")
	}
	return key, nil
}

func (s *LocalFileStore) GetUrlFromKey(key string) string {
	return s.urlPrefix + "/" + key
}

func (s *LocalFileStore) CleanUp() {}
