package fiscal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"atolonline/internal/domain/models"
	"atolonline/internal/domain/ports"
	"atolonline/pkg/atol"
)

// Settings — параметры организации, общие для всех документов
type Settings struct {
	GroupCode string
	Info      atol.Info
}

// Service реализует отправку чеков и отслеживание их статуса.
type Service struct {
	client   atol.Client
	journal  ports.JournalRepository
	logger   ports.Logger
	settings Settings
	now      func() time.Time
}

// NewService создает новый экземпляр Service.
func NewService(client atol.Client, journal ports.JournalRepository, logger ports.Logger, settings Settings) *Service {
	return &Service{
		client:   client,
		journal:  journal,
		logger:   logger,
		settings: settings,
		now:      time.Now,
	}
}

// Token получает токен авторизации.
func (s *Service) Token(ctx context.Context) (string, error) {
	resp, err := s.client.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("ошибка получения токена: %w", err)
	}
	return resp.Token, nil
}

// Register отправляет документ и записывает результат в журнал.
// Ошибка API тоже попадает в журнал со статусом fail и возвращается вызывающему.
func (s *Service) Register(ctx context.Context, doc *models.ReceiptDocument) (*models.JournalEntry, error) {
	receipt, op, err := BuildReceipt(doc)
	if err != nil {
		return nil, err
	}

	if doc.ExternalID != "" {
		prev, err := s.journal.Find(doc.ExternalID)
		if err != nil {
			return nil, err
		}
		if prev != nil && prev.Status != atol.StatusFail {
			return prev, fmt.Errorf("документ %s уже отправлен (uuid %s, статус %s)", prev.ExternalID, prev.UUID, prev.Status)
		}
	}

	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}

	params := atol.OperationParams{
		GroupCode:  s.settings.GroupCode,
		Operation:  op,
		ExternalID: doc.ExternalID,
		Receipt:    receipt,
		Info:       s.settings.Info,
		Token:      token,
		Timestamp:  s.now(),
	}
	req, err := atol.NewOperationRequest(params)
	if err != nil {
		return nil, err
	}
	// идентификатор фиксируется до отправки, чтобы журнал совпал с запросом
	params.ExternalID = req.ExternalID()

	now := s.now()
	entry := &models.JournalEntry{
		ExternalID: params.ExternalID,
		Operation:  string(op),
		GroupCode:  s.settings.GroupCode,
		Total:      receipt.Total().String(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	log := s.logger.With("external_id", entry.ExternalID, "operation", entry.Operation)
	resp, err := s.client.Register(ctx, params)
	if err != nil {
		entry.Status = atol.StatusFail
		applyError(entry, err)
		log.Error("Документ не принят: %v", err)
		if saveErr := s.journal.Save(entry); saveErr != nil {
			log.Warn("Не удалось записать журнал: %v", saveErr)
		}
		return entry, err
	}

	entry.UUID = resp.UUID
	entry.Status = resp.Status
	log.Info("Документ принят, uuid %s, статус %s", resp.UUID, resp.Status)

	if err := s.journal.Save(entry); err != nil {
		return entry, fmt.Errorf("документ принят (uuid %s), но не записан в журнал: %w", resp.UUID, err)
	}
	return entry, nil
}

// Refresh запрашивает отчет по документу из журнала и обновляет запись.
// id — external_id или uuid.
func (s *Service) Refresh(ctx context.Context, id string) (*models.JournalEntry, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if entry.UUID == "" {
		return entry, fmt.Errorf("документ %s не был принят сервером", entry.ExternalID)
	}

	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}
	return s.refresh(ctx, entry, token)
}

// refresh запрашивает отчет с уже полученным токеном.
func (s *Service) refresh(ctx context.Context, entry *models.JournalEntry, token string) (*models.JournalEntry, error) {
	log := s.logger.With("external_id", entry.ExternalID, "uuid", entry.UUID)
	report, err := s.client.Report(ctx, entry.GroupCode, entry.UUID, token)
	entry.UpdatedAt = s.now()
	if err != nil {
		var apiErr *atol.APIError
		if !errors.As(err, &apiErr) {
			return entry, err
		}
		entry.Status = atol.StatusFail
		applyError(entry, err)
		log.Error("Документ не зарегистрирован: %v", err)
		if saveErr := s.journal.Save(entry); saveErr != nil {
			log.Warn("Не удалось записать журнал: %v", saveErr)
		}
		return entry, err
	}

	entry.Status = report.Status
	entry.ErrorCode, entry.ErrorKind, entry.ErrorText = 0, "", ""
	if p := report.Payload; p != nil {
		entry.Fiscal = &models.FiscalData{
			FnNumber:                p.FnNumber,
			ShiftNumber:             p.ShiftNumber,
			ReceiptDatetime:         p.ReceiptDatetime,
			FiscalReceiptNumber:     p.FiscalReceiptNumber,
			FiscalDocumentNumber:    p.FiscalDocumentNumber,
			FiscalDocumentAttribute: p.FiscalDocumentAttribute,
			EcrRegistrationNumber:   p.EcrRegistrationNumber,
			FnsSite:                 p.FnsSite,
		}
	}
	log.Info("Статус документа: %s", entry.Status)

	if err := s.journal.Save(entry); err != nil {
		return entry, err
	}
	return entry, nil
}

// RefreshPending обновляет все незавершенные документы журнала одним токеном.
// Ошибки отдельных документов логируются, обход продолжается.
func (s *Service) RefreshPending(ctx context.Context) ([]*models.JournalEntry, error) {
	entries, err := s.journal.List()
	if err != nil {
		return nil, err
	}

	var pending []*models.JournalEntry
	for _, e := range entries {
		if !e.IsFinal() && e.UUID != "" {
			pending = append(pending, e)
		}
	}
	if len(pending) == 0 {
		return nil, nil
	}

	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}

	var updated []*models.JournalEntry
	for _, e := range pending {
		if ctx.Err() != nil {
			return updated, ctx.Err()
		}
		refreshed, err := s.refresh(ctx, e, token)
		if err != nil {
			s.logger.Warn("Документ %s: %v", e.ExternalID, err)
		}
		if refreshed != nil {
			updated = append(updated, refreshed)
		}
	}
	return updated, nil
}

// Journal возвращает все записи журнала.
func (s *Service) Journal() ([]*models.JournalEntry, error) {
	return s.journal.List()
}

// Forget удаляет запись журнала по external_id.
func (s *Service) Forget(externalID string) error {
	if err := s.journal.Delete(externalID); err != nil {
		return err
	}
	s.logger.Info("Документ %s удален из журнала", externalID)
	return nil
}

func (s *Service) lookup(id string) (*models.JournalEntry, error) {
	entry, err := s.journal.Find(id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		if entry, err = s.journal.FindByUUID(id); err != nil {
			return nil, err
		}
	}
	if entry == nil {
		return nil, fmt.Errorf("документ %s не найден в журнале", id)
	}
	return entry, nil
}

func applyError(entry *models.JournalEntry, err error) {
	var apiErr *atol.APIError
	if errors.As(err, &apiErr) {
		entry.ErrorCode = apiErr.Code
		entry.ErrorKind = apiErr.Kind.String()
		entry.ErrorText = apiErr.Text
		return
	}
	entry.ErrorText = err.Error()
}
