package atol

import "encoding/json"

// Info — служебный блок запроса: данные организации и адрес для уведомлений
type Info struct {
	inn            string
	paymentAddress string
	callbackURL    string
}

// NewInfo создает служебный блок
func NewInfo(inn, paymentAddress, callbackURL string) Info {
	return Info{
		inn:            inn,
		paymentAddress: paymentAddress,
		callbackURL:    callbackURL,
	}
}

// Inn — ИНН организации
func (i Info) Inn() string { return i.inn }

// PaymentAddress — место расчетов (адрес сайта или магазина)
func (i Info) PaymentAddress() string { return i.paymentAddress }

// CallbackURL — адрес для уведомления о результате обработки
func (i Info) CallbackURL() string { return i.callbackURL }

// MarshalJSON формирует {callbackUrl,inn,payment_address}
func (i Info) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		CallbackURL    string `json:"callbackUrl"`
		Inn            string `json:"inn"`
		PaymentAddress string `json:"payment_address"`
	}{
		CallbackURL:    i.callbackURL,
		Inn:            i.inn,
		PaymentAddress: i.paymentAddress,
	})
}
