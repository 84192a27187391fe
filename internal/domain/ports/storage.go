package ports

import "atolonline/internal/domain/models"

// JournalRepository определяет интерфейс журнала отправленных документов.
// Реализация интерфейса находится в слое Infrastructure.
type JournalRepository interface {
	// Save добавляет или обновляет запись по external_id
	Save(entry *models.JournalEntry) error

	// Find находит запись по external_id; nil, если записи нет
	Find(externalID string) (*models.JournalEntry, error)

	// FindByUUID находит запись по uuid документа в АТОЛ Онлайн
	FindByUUID(uuid string) (*models.JournalEntry, error)

	// List возвращает все записи в порядке добавления
	List() ([]*models.JournalEntry, error)

	// Delete удаляет запись по external_id
	Delete(externalID string) error
}
