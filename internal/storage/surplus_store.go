package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// SurplusItem — запись об излишках. Поля формы хранятся как есть, рядом с id, images и createdAt.
type SurplusItem map[string]any

// SurplusStore хранит записи в одном JSON-массиве на диске.
type SurplusStore struct {
	mu   sync.Mutex
	path string
}

// NewSurplusStore создаёт каталог и пустой массив, если файла ещё нет.
func NewSurplusStore(path string) (*SurplusStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог данных: %w", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return nil, fmt.Errorf("storage: не удалось создать %s: %w", path, err)
		}
	}
	return &SurplusStore{path: path}, nil
}

func (s *SurplusStore) List(ctx context.Context) ([]SurplusItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Append дописывает запись в конец массива и перезаписывает файл атомарно.
func (s *SurplusStore) Append(ctx context.Context, item SurplusItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}
	items = append(items, item)

	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: не удалось сериализовать записи: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("storage: не удалось записать %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("storage: не удалось заменить %s: %w", s.path, err)
	}
	return nil
}

func (s *SurplusStore) load() ([]SurplusItem, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("storage: не удалось прочитать %s: %w", s.path, err)
	}
	items := []SurplusItem{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("storage: повреждён файл %s: %w", s.path, err)
	}
	return items, nil
}
