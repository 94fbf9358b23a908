package billing

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/fisiogest/physio-scheduler/internal/httperr"
	"github.com/fisiogest/physio-scheduler/internal/models"
)

// PaymentLinks genera links de cobro de Mercado Pago para el saldo
// pendiente de un paciente
type PaymentLinks struct {
	prefs preference.Client
}

func NewPaymentLinks(accessToken string) (*PaymentLinks, error) {
	if accessToken == "" {
		return &PaymentLinks{}, nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &PaymentLinks{prefs: preference.NewClient(cfg)}, nil
}

func (p *PaymentLinks) Enabled() bool {
	return p != nil && p.prefs != nil
}

// CreateForBalance crea una preferencia de pago por el saldo del paciente
// y devuelve la URL de checkout
func (p *PaymentLinks) CreateForBalance(
	ctx context.Context,
	patient *models.Patient,
	balance float64,
) (string, error) {

	if !p.Enabled() {
		return "", httperr.ErrBusiness("billing_not_configured")
	}
	if balance <= 0 {
		return "", httperr.ErrBusiness("no_pending_balance")
	}

	resp, err := p.prefs.Create(ctx, preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:       fmt.Sprintf("Sesiones de fisioterapia - %s", patient.FullName),
				Description: "Saldo pendiente",
				Quantity:    1,
				UnitPrice:   balance,
				CurrencyID:  "MXN",
			},
		},
		ExternalReference: patient.ID.String(),
	})
	if err != nil {
		return "", err
	}

	return resp.InitPoint, nil
}
