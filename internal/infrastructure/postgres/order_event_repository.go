package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/entity"
	"github.com/nicklasfangerfisk/Smartbuy-backoffice-sub002/internal/domain/repository"
)

var _ repository.OrderEventRepository = (*OrderEventRepo)(nil)

// OrderEventRepo implementación del log de eventos de orden sobre PostgreSQL
// (usable con pool o tx). Append-only: solo INSERT y SELECT.
// El payload se guarda como JSONB junto a la columna event_type y se
// decodifica contra la unión cerrada de variantes al leer.
type OrderEventRepo struct {
	q Querier
}

// NewOrderEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderEventRepository(q Querier) *OrderEventRepo {
	return &OrderEventRepo{q: q}
}

const eventColumns = `id, order_id, event_type, title, description, actor, payload, created_at`

// Create persiste un evento de orden.
func (r *OrderEventRepo) Create(event *entity.OrderEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	payload, err := entity.EncodePayload(event.Payload)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO order_events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(context.Background(), query,
		event.ID, event.OrderID, event.Type, event.Title, event.Description,
		event.Actor, payload, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create order event: %w", err)
	}
	return nil
}

// ListByOrder devuelve todos los eventos de la orden ascendente por
// (created_at, id).
func (r *OrderEventRepo) ListByOrder(orderID string) ([]*entity.OrderEvent, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM order_events WHERE order_id = $1
		ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order events: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order event: %w", err)
		}
		list = append(list, ev)
	}
	return list, rows.Err()
}

// LastStatusChange devuelve el STATUS_CHANGE más reciente de la orden por
// (created_at, id), o nil si el log no tiene ninguno.
func (r *OrderEventRepo) LastStatusChange(orderID string) (*entity.OrderEvent, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM order_events WHERE order_id = $1 AND event_type = $2
		ORDER BY created_at DESC, id DESC LIMIT 1`
	ev, err := scanEvent(r.q.QueryRow(context.Background(), query, orderID, entity.EventTypeStatusChange))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last status change: %w", err)
	}
	return ev, nil
}

func scanEvent(row pgx.Row) (*entity.OrderEvent, error) {
	var ev entity.OrderEvent
	var raw []byte
	if err := row.Scan(&ev.ID, &ev.OrderID, &ev.Type, &ev.Title,
		&ev.Description, &ev.Actor, &raw, &ev.CreatedAt); err != nil {
		return nil, err
	}
	payload, err := entity.DecodePayload(ev.Type, raw)
	if err != nil {
		return nil, err
	}
	ev.Payload = payload
	return &ev, nil
}
