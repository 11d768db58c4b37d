package service

import (
	"fmt"
	"math/rand/v2"
	"time"

	"go-shop-admin/internal/repository"

	"gorm.io/gorm"
)

const (
	orderNumberPrefix   = "ORD"
	orderNumberCharset  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	orderNumberTokenLen = 6
)

// OrderNumberGenerator produces the human-facing order identifier,
// ORD-<6 random base36 chars>-<YYYYMMDD>. Uniqueness matters here,
// unpredictability does not.
type OrderNumberGenerator struct {
	orders repository.OrderRepository
	now    func() time.Time
}

func NewOrderNumberGenerator(orders repository.OrderRepository) *OrderNumberGenerator {
	return &OrderNumberGenerator{orders: orders, now: time.Now}
}

// Generate re-rolls until the candidate is absent from the order set.
// With 36^6 tokens per day a second roll is already rare.
func (g *OrderNumberGenerator) Generate(tx *gorm.DB) (string, error) {
	date := g.now().Format("20060102")
	for {
		candidate := fmt.Sprintf("%s-%s-%s", orderNumberPrefix, randomToken(orderNumberTokenLen), date)
		exists, err := g.orders.ExistsByNumber(tx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
}

func randomToken(length int) string {
	token := make([]byte, length)
	for i := range token {
		token[i] = orderNumberCharset[rand.IntN(len(orderNumberCharset))]
	}
	return string(token)
}
