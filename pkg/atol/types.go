package atol

import (
	"time"
)

// DefaultBaseURL — адрес API АТОЛ Онлайн версии 3
const DefaultBaseURL = "https://online.atol.ru/possystem/v3/"

// TimestampLayout — формат поля timestamp в теле запроса (dd.mm.yyyy HH:MM:SS)
const TimestampLayout = "02.01.2006 15:04:05"

// TaxRate — ставка НДС позиции чека
type TaxRate string

const (
	TaxNone   TaxRate = "none"   // Без НДС
	TaxVat0   TaxRate = "vat0"   // НДС 0%
	TaxVat10  TaxRate = "vat10"  // НДС 10%
	TaxVat18  TaxRate = "vat18"  // НДС 18%
	TaxVat110 TaxRate = "vat110" // НДС по расчетной ставке 10/110
	TaxVat118 TaxRate = "vat118" // НДС по расчетной ставке 18/118
)

// Valid сообщает, известна ли ставка API
func (t TaxRate) Valid() bool {
	switch t {
	case TaxNone, TaxVat0, TaxVat10, TaxVat18, TaxVat110, TaxVat118:
		return true
	}
	return false
}

// PaymentType — вид оплаты
type PaymentType int

const (
	PaymentCash       PaymentType = 0 // Наличные
	PaymentElectronic PaymentType = 1 // Безналичный расчет
)

// Sno — система налогообложения
type Sno string

const (
	SnoOSN              Sno = "osn"                // Общая
	SnoUSNIncome        Sno = "usn_income"         // Упрощенная (доходы)
	SnoUSNIncomeOutcome Sno = "usn_income_outcome" // Упрощенная (доходы минус расходы)
	SnoENVD             Sno = "envd"               // ЕНВД
	SnoESN              Sno = "esn"                // ЕСХН
	SnoPatent           Sno = "patent"             // Патент
)

// Valid сообщает, известна ли система налогообложения API
func (s Sno) Valid() bool {
	switch s {
	case SnoOSN, SnoUSNIncome, SnoUSNIncomeOutcome, SnoENVD, SnoESN, SnoPatent:
		return true
	}
	return false
}

// Operation — тип операции регистрации документа
type Operation string

const (
	OperationSell           Operation = "sell"            // Приход
	OperationSellRefund     Operation = "sell_refund"     // Возврат прихода
	OperationSellCorrection Operation = "sell_correction" // Коррекция прихода
	OperationBuy            Operation = "buy"             // Расход
	OperationBuyRefund      Operation = "buy_refund"      // Возврат расхода
	OperationBuyCorrection  Operation = "buy_correction"  // Коррекция расхода
)

// Valid сообщает, поддерживается ли операция
func (o Operation) Valid() bool {
	switch o {
	case OperationSell, OperationSellRefund, OperationSellCorrection,
		OperationBuy, OperationBuyRefund, OperationBuyCorrection:
		return true
	}
	return false
}

// Статусы документа в ответах API
const (
	StatusWait = "wait"
	StatusDone = "done"
	StatusFail = "fail"
)

// Config — конфигурация клиента
type Config struct {
	BaseURL  string        // Адрес API (по умолчанию DefaultBaseURL)
	Login    string        // Логин интегратора
	Password string        // Пароль интегратора
	Timeout  time.Duration // Таймаут HTTP-запроса (по умолчанию 30с)
	Logger   func(string)  // Опциональный логгер
	Metrics  *Metrics      // Опциональные метрики Prometheus
	Now      func() time.Time
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}
