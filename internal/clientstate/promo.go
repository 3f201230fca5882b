package clientstate

import (
	"context"
	"errors"
	"strings"
	"time"
)

const (
	promoKeyPrefix      = "promo.dismissed."
	DefaultDismissalTTL = 7 * 24 * time.Hour
)

var ErrPromoRequired = errors.New("clientstate: promo id is required")

// PromoDismissals remembers which promotional banners a visitor closed so
// they stay hidden until the TTL runs out.
type PromoDismissals struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

func NewPromoDismissals(store Store, ttl time.Duration) *PromoDismissals {
	if ttl <= 0 {
		ttl = DefaultDismissalTTL
	}
	return &PromoDismissals{store: store, ttl: ttl, now: time.Now}
}

// Dismiss hides promo for the configured TTL.
func (p *PromoDismissals) Dismiss(ctx context.Context, promo string) error {
	key, err := promoKey(promo)
	if err != nil {
		return err
	}
	return p.store.Set(ctx, key, p.now().UTC().Format(time.RFC3339), p.ttl)
}

// Dismissed reports whether promo is currently hidden.
func (p *PromoDismissals) Dismissed(ctx context.Context, promo string) (bool, error) {
	key, err := promoKey(promo)
	if err != nil {
		return false, err
	}
	_, ok, err := p.store.Get(ctx, key)
	return ok, err
}

// Reset shows promo again.
func (p *PromoDismissals) Reset(ctx context.Context, promo string) error {
	key, err := promoKey(promo)
	if err != nil {
		return err
	}
	return p.store.Delete(ctx, key)
}

func promoKey(promo string) (string, error) {
	promo = strings.TrimSpace(promo)
	if promo == "" {
		return "", ErrPromoRequired
	}
	return promoKeyPrefix + promo, nil
}
