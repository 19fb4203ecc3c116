// Package onlineorderrepo keeps the online orders translated by the ordering
// anti-corruption layer in Redis, one JSON document per order.
package onlineorderrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/ordering"
	"kitchen/internal/core/ports"
	"kitchen/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "kitchen:online_order:"

var _ ports.OnlineOrderCatalog = &Repository{}

// OnlineOrderDTO is the stored document.
type OnlineOrderDTO struct {
	Ref    string             `json:"ref"`
	Type   string             `json:"type"`
	Pizzas []kernel.PizzaSize `json:"pizzas"`
}

type Repository struct {
	client *redis.Client
	ttl    time.Duration
}

type Option func(*Repository)

// WithTTL expires stored orders after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(r *Repository) {
		r.ttl = ttl
	}
}

func NewRepository(client *redis.Client, opts ...Option) *Repository {
	r := &Repository{client: client}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) Save(ctx context.Context, order *ordering.OnlineOrder) error {
	if err := order.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(fromDomain(order))
	if err != nil {
		return fmt.Errorf("encode online order %s: %w", order.Ref(), err)
	}

	if err = r.client.Set(ctx, key(order.Ref()), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("store online order %s: %w", order.Ref(), err)
	}
	return nil
}

func (r *Repository) FindByRef(ctx context.Context, ref kernel.OnlineOrderRef) (*ordering.OnlineOrder, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	data, err := r.client.Get(ctx, key(ref)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errs.NewObjectNotFoundError("online order", ref.String())
	}
	if err != nil {
		return nil, fmt.Errorf("load online order %s: %w", ref, err)
	}

	var dto OnlineOrderDTO
	if err = json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("decode online order %s: %w", ref, err)
	}
	return toDomain(dto)
}

func key(ref kernel.OnlineOrderRef) string {
	return keyPrefix + ref.String()
}

func fromDomain(order *ordering.OnlineOrder) OnlineOrderDTO {
	return OnlineOrderDTO{
		Ref:    order.Ref().String(),
		Type:   order.Type().String(),
		Pizzas: order.Pizzas(),
	}
}

func toDomain(dto OnlineOrderDTO) (*ordering.OnlineOrder, error) {
	ref, err := kernel.OnlineOrderRefFromString(dto.Ref)
	if err != nil {
		return nil, err
	}

	orderType, err := ordering.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}

	return ordering.NewOnlineOrder(ref, orderType, dto.Pizzas)
}
