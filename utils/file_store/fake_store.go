package file_store

import (
	"context"
	"io"
	"io/ioutil"
	"sync"
)

// FakeFileStore keeps files in memory, for tests.
type FakeFileStore struct {
	mu    sync.Mutex
	Files map[string][]byte
}

func NewFakeFileStore() *FakeFileStore {
	return &FakeFileStore{Files: map[string][]byte{}}
}

func (s *FakeFileStore) Store(ctx context.Context, fileName string, body io.Reader) (string, error) {
	data, err := ioutil.ReadAll(body)
	if err != nil {
		return "", err
	}
	key := defaultKey(fileName)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Files[key] = data
	return key, nil
}

func (s *FakeFileStore) GetUrlFromKey(key string) string {
	return "/fake/" + key
}

func (s *FakeFileStore) CleanUp() {}
