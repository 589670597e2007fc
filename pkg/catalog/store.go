package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"maplemarket/pkg/logger"
)

// FileStore хранит каталог как один JSON файл
// Каждое сохранение - полная перезапись документа; крэш посреди записи может
// испортить файл, единственное восстановление - деградация Load до пустого каталога
type FileStore struct {
	path string
}

// NewFileStore создает хранилище каталога по указанному пути
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path возвращает путь к файлу каталога
func (s *FileStore) Path() string {
	return s.path
}

// Load читает каталог с диска
// Отсутствующий, пустой или битый файл - это пустой каталог, не ошибка
func (s *FileStore) Load() *Catalog {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("path", s.path).Msg("Failed to read catalog file, starting with empty catalog")
		}
		return &Catalog{Products: []Product{}}
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return &Catalog{Products: []Product{}}
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		logger.Warn().Err(err).Str("path", s.path).Msg("Catalog file is corrupted, starting with empty catalog")
		return &Catalog{Products: []Product{}}
	}

	if c.Products == nil {
		c.Products = []Product{}
	}

	return &c
}

// Save перезаписывает файл каталога целиком
// UTF-8, отступ два пробела, порядок полей стабилен (порядок полей структур)
func (s *FileStore) Save(c *Catalog) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}

	return nil
}
