package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"atolonline/internal/domain/models"
	"atolonline/internal/domain/ports"
)

// FileJournalRepository реализует ports.JournalRepository поверх JSON-файла.
type FileJournalRepository struct {
	mu       sync.Mutex
	filePath string
	entries  []*models.JournalEntry
}

// NewFileJournalRepository открывает журнал; отсутствующий файл — пустой журнал.
func NewFileJournalRepository(filePath string) (ports.JournalRepository, error) {
	repo := &FileJournalRepository{
		filePath: filePath,
	}

	if err := repo.loadFromFile(); err != nil {
		return nil, fmt.Errorf("ошибка инициализации журнала: %w", err)
	}

	return repo, nil
}

// Save добавляет запись или заменяет запись с тем же external_id.
func (r *FileJournalRepository) Save(entry *models.JournalEntry) error {
	if entry == nil || entry.ExternalID == "" {
		return fmt.Errorf("запись журнала без external_id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *entry
	entries := make([]*models.JournalEntry, 0, len(r.entries)+1)
	found := false
	for _, e := range r.entries {
		if e.ExternalID == entry.ExternalID {
			e = &stored
			found = true
		}
		entries = append(entries, e)
	}
	if !found {
		entries = append(entries, &stored)
	}

	return r.commit(entries)
}

// Find находит запись по external_id.
func (r *FileJournalRepository) Find(externalID string) (*models.JournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.ExternalID == externalID {
			found := *e
			return &found, nil
		}
	}
	return nil, nil
}

// FindByUUID находит запись по uuid документа.
func (r *FileJournalRepository) FindByUUID(uuid string) (*models.JournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if uuid == "" {
		return nil, nil
	}
	for _, e := range r.entries {
		if e.UUID == uuid {
			found := *e
			return &found, nil
		}
	}
	return nil, nil
}

// List возвращает копии всех записей.
func (r *FileJournalRepository) List() ([]*models.JournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*models.JournalEntry, len(r.entries))
	for i, e := range r.entries {
		c := *e
		result[i] = &c
	}
	return result, nil
}

// Delete удаляет запись по external_id.
func (r *FileJournalRepository) Delete(externalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.ExternalID == externalID {
			entries := make([]*models.JournalEntry, 0, len(r.entries)-1)
			entries = append(entries, r.entries[:i]...)
			entries = append(entries, r.entries[i+1:]...)
			return r.commit(entries)
		}
	}

	return fmt.Errorf("документ %s не найден в журнале", externalID)
}

// commit записывает новый список на диск и только затем заменяет им состояние в памяти.
func (r *FileJournalRepository) commit(entries []*models.JournalEntry) error {
	if err := r.saveToFile(entries); err != nil {
		return err
	}
	r.entries = entries
	return nil
}

// loadFromFile загружает журнал (не потокобезопасно, вызывается под мьютексом или при создании).
func (r *FileJournalRepository) loadFromFile() error {
	data, err := os.ReadFile(r.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			r.entries = make([]*models.JournalEntry, 0)
			return nil
		}
		return fmt.Errorf("ошибка чтения журнала: %w", err)
	}

	var jd struct {
		Entries []*models.JournalEntry `json:"entries"`
	}
	if err := json.Unmarshal(data, &jd); err != nil {
		return fmt.Errorf("ошибка разбора JSON: %w", err)
	}

	r.entries = jd.Entries
	if r.entries == nil {
		r.entries = make([]*models.JournalEntry, 0)
	}
	return nil
}

// saveToFile записывает журнал во временный файл и переименовывает его поверх старого.
func (r *FileJournalRepository) saveToFile(entries []*models.JournalEntry) error {
	dir := filepath.Dir(r.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("ошибка создания директории: %w", err)
	}

	data := struct {
		Entries []*models.JournalEntry `json:"entries"`
	}{
		Entries: entries,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации JSON: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("ошибка создания временного файла: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(jsonData); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("ошибка записи журнала: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("ошибка записи журнала: %w", err)
	}
	if err := os.Rename(tmpName, r.filePath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("ошибка замены файла журнала: %w", err)
	}

	return nil
}
