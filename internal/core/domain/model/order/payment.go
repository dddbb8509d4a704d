package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
)

type PaymentMethod int

const (
	UnknownPaymentMethod PaymentMethod = iota
	Cash
	Card
	Online
	LoyaltyPoints
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		UnknownPaymentMethod: "UNKNOWN",
		Cash:                 "CASH",
		Card:                 "CARD",
		Online:               "ONLINE",
		LoyaltyPoints:        "LOYALTY_POINTS",
	}
}

func (m PaymentMethod) Validate() error {
	if m < Cash || m > LoyaltyPoints {
		return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "UNKNOWN"
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for m, str := range getPaymentMethodStrings() {
		if m != UnknownPaymentMethod && str == s {
			return m, nil
		}
	}
	return UnknownPaymentMethod, errs.NewValueIsInvalidErrorWithCause(
		"payment method",
		fmt.Errorf("%q is not a valid payment method", s),
	)
}

type PaymentStatus int

const (
	UnknownPaymentStatus PaymentStatus = iota
	PaymentPending
	PaymentCompleted
	PaymentFailed
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		UnknownPaymentStatus: "UNKNOWN",
		PaymentPending:       "PENDING",
		PaymentCompleted:     "COMPLETED",
		PaymentFailed:        "FAILED",
		PaymentRefunded:      "REFUNDED",
	}
}

func (s PaymentStatus) Validate() error {
	if s < PaymentPending || s > PaymentRefunded {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for st := PaymentPending; st <= PaymentRefunded; st++ {
		if st.String() == s {
			return st, nil
		}
	}
	return UnknownPaymentStatus, errs.NewValueIsInvalidErrorWithCause(
		"payment status",
		fmt.Errorf("%q is not a valid payment status", s),
	)
}

// Payment records how an order is to be settled. It is created PENDING with
// the order total and is not processed by this service.
type Payment struct {
	id          string
	method      PaymentMethod
	amount      kernel.Money
	status      PaymentStatus
	completedAt *time.Time
}

func newPayment(method PaymentMethod, amount kernel.Money) (Payment, error) {
	if err := errors.Join(method.Validate(), amount.Validate()); err != nil {
		return Payment{}, err
	}
	return Payment{
		id:     strings.ToUpper(kernel.NewUUID().String()[:8]),
		method: method,
		amount: amount,
		status: PaymentPending,
	}, nil
}

// RestorePayment rebuilds a payment from storage.
func RestorePayment(
	id string,
	method PaymentMethod,
	amount kernel.Money,
	status PaymentStatus,
	completedAt *time.Time,
) (Payment, error) {
	var idErr error
	if strings.TrimSpace(id) == "" {
		idErr = errs.NewValueIsRequiredError("payment id")
	}
	if err := errors.Join(idErr, method.Validate(), amount.Validate(), status.Validate()); err != nil {
		return Payment{}, err
	}
	return Payment{id: id, method: method, amount: amount, status: status, completedAt: completedAt}, nil
}

func (p Payment) ID() string {
	return p.id
}

func (p Payment) Method() PaymentMethod {
	return p.method
}

func (p Payment) Amount() kernel.Money {
	return p.amount
}

func (p Payment) Status() PaymentStatus {
	return p.status
}

// CompletedAt is nil until the payment is settled.
func (p Payment) CompletedAt() *time.Time {
	return p.completedAt
}
