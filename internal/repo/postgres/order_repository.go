package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Gunvolt24/merch_fulfillment/internal/domain"
	"github.com/Gunvolt24/merch_fulfillment/internal/ports"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что OrderRepository удовлетворяет интерфейсу OrderRepository.
var _ ports.OrderRepository = (*OrderRepository)(nil)

// pgUniqueViolation — SQLSTATE нарушения уникальности.
const pgUniqueViolation = "23505"

const orderColumns = `
	id, user_id, payment_session_id, payment_intent_id, fulfillment_order_id, status,
	total_amount, shipping_address, shipment, draft_claimed_at, confirmed_at,
	version, created_at, updated_at`

// OrderRepository — реализация репозитория заказов на Postgres (pgxpool).
// Каждая мутация — один UPDATE с условием в WHERE; конкурентные вызовы
// сериализуются блокировкой строки.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository - конструктор OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository { return &OrderRepository{pool: pool} }

// CreatePending — заказ и его позиции в одной транзакции.
func (r *OrderRepository) CreatePending(ctx context.Context, userID string, items []domain.Item, totalAmount int64) (string, error) {
	if userID == "" {
		return "", errors.New("user_id is required")
	}
	if len(items) == 0 {
		return "", errors.New("order must contain at least one item")
	}

	orderID := uuid.NewString()

	transaction, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() {
		// При уже завершённой транзакции Rollback вернёт ErrTxClosed — игнорируем.
		if rbErr := transaction.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			_ = rbErr
		}
	}()

	if _, err = transaction.Exec(ctx, `
		INSERT INTO orders (id, user_id, status, total_amount)
		VALUES ($1, $2, $3, $4)
	`, orderID, userID, domain.StatusPending, totalAmount); err != nil {
		return "", fmt.Errorf("insert order: %w", err)
	}

	if err = copyItems(ctx, transaction, orderID, items); err != nil {
		return "", err
	}

	if err := transaction.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return orderID, nil
}

// AttachSession — выставляет payment_session_id один раз; повтор с тем же id — no-op.
func (r *OrderRepository) AttachSession(ctx context.Context, orderID, sessionID string) error {
	if sessionID == "" {
		return errors.New("session id is required")
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE orders
		SET payment_session_id = $2, version = version + 1, updated_at = now()
		WHERE id = $1 AND payment_session_id = ''
	`, orderID, sessionID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: session %s belongs to another order", domain.ErrSessionConflict, sessionID)
		}
		return fmt.Errorf("attach session: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var current string
	err = r.pool.QueryRow(ctx, `SELECT payment_session_id FROM orders WHERE id = $1`, orderID).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}
	if err != nil {
		return fmt.Errorf("select session: %w", err)
	}
	if current != sessionID {
		return fmt.Errorf("%w: order %s already has session %s", domain.ErrSessionConflict, orderID, current)
	}
	return nil
}

// MarkPaid — pending → paid вместе с адресом и payment_intent.
func (r *OrderRepository) MarkPaid(ctx context.Context, orderID string, addr domain.ShippingAddress, paymentIntentID string) (bool, error) {
	addrJSON, err := json.Marshal(addr)
	if err != nil {
		return false, fmt.Errorf("marshal address: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE orders
		SET status = $2, shipping_address = $3, payment_intent_id = $4,
			version = version + 1, updated_at = now()
		WHERE id = $1 AND status = $5
	`, orderID, domain.StatusPaid, addrJSON, paymentIntentID, domain.StatusPending)
	if err != nil {
		return false, fmt.Errorf("mark paid: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	return false, r.ensureExists(ctx, orderID)
}

// UpdateStatus — смена статуса, если текущий равен change.Expected.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID string, change domain.StatusChange) error {
	if !domain.CanTransition(change.Expected, change.Next) {
		return fmt.Errorf("%w: transition %s -> %s is not allowed", domain.ErrStatusConflict, change.Expected, change.Next)
	}

	var shipmentJSON []byte
	if change.Shipment != nil {
		data, err := json.Marshal(change.Shipment)
		if err != nil {
			return fmt.Errorf("marshal shipment: %w", err)
		}
		shipmentJSON = data
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE orders
		SET status = $3,
			fulfillment_order_id = CASE WHEN fulfillment_order_id = '' THEN $4 ELSE fulfillment_order_id END,
			shipment = COALESCE($5::jsonb, shipment),
			version = version + 1,
			updated_at = now()
		WHERE id = $1 AND status = $2
	`, orderID, change.Expected, change.Next, change.FulfillmentOrderID, shipmentJSON)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	if err := r.ensureExists(ctx, orderID); err != nil {
		return err
	}
	return fmt.Errorf("%w: order %s is not %s", domain.ErrStatusConflict, orderID, change.Expected)
}

// ClaimDraft — право на создание черновика получает только первый вызов.
func (r *OrderRepository) ClaimDraft(ctx context.Context, orderID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE orders
		SET draft_claimed_at = now(), version = version + 1, updated_at = now()
		WHERE id = $1 AND status = $2 AND draft_claimed_at IS NULL
	`, orderID, domain.StatusPaid)
	if err != nil {
		return false, fmt.Errorf("claim draft: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	return false, r.ensureExists(ctx, orderID)
}

// MarkConfirmed — фиксирует подтверждение у провайдера ровно один раз.
func (r *OrderRepository) MarkConfirmed(ctx context.Context, orderID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE orders
		SET confirmed_at = now(), version = version + 1, updated_at = now()
		WHERE id = $1 AND confirmed_at IS NULL
	`, orderID)
	if err != nil {
		return false, fmt.Errorf("mark confirmed: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	return false, r.ensureExists(ctx, orderID)
}

// GetByID — заказ по id. Если не нашли, возвращает (nil, nil).
func (r *OrderRepository) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	return r.findOne(ctx, "id", orderID)
}

// FindBySessionID — заказ по id платёжной сессии.
func (r *OrderRepository) FindBySessionID(ctx context.Context, sessionID string) (*domain.Order, error) {
	if sessionID == "" {
		return nil, nil
	}
	return r.findOne(ctx, "payment_session_id", sessionID)
}

// FindByFulfillmentID — заказ по id заказа у провайдера.
func (r *OrderRepository) FindByFulfillmentID(ctx context.Context, fulfillmentOrderID string) (*domain.Order, error) {
	if fulfillmentOrderID == "" {
		return nil, nil
	}
	return r.findOne(ctx, "fulfillment_order_id", fulfillmentOrderID)
}

// FindByPaymentIntent — заказ по payment_intent (для возвратов).
func (r *OrderRepository) FindByPaymentIntent(ctx context.Context, paymentIntentID string) (*domain.Order, error) {
	if paymentIntentID == "" {
		return nil, nil
	}
	return r.findOne(ctx, "payment_intent_id", paymentIntentID)
}

// ListByUser — постраничный список заказов пользователя (новые первыми).
func (r *OrderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return r.list(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
}

// ListByStatus — последние обновлённые заказы в статусе (для операторов).
func (r *OrderRepository) ListByStatus(ctx context.Context, status domain.Status, limit int) ([]*domain.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	return r.list(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE status = $1
		ORDER BY updated_at DESC, id DESC
		LIMIT $2
	`, status, limit)
}

// ------вспомогательные функции------

// findOne — заказ по значению уникальной колонки вместе с позициями.
func (r *OrderRepository) findOne(ctx context.Context, column, value string) (*domain.Order, error) {
	order, err := scanOrder(r.pool.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders WHERE `+column+` = $1
	`, value))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select order by %s: %w", column, err)
	}

	itemsByID, err := r.loadItems(ctx, []string{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = itemsByID[order.ID]
	return order, nil
}

// list — базовые записи страницы + позиции одним запросом, порядок сохраняется.
func (r *OrderRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	ids := make([]string, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders rows: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemsByID, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, order := range orders {
		order.Items = itemsByID[order.ID]
	}
	return orders, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, orderIDs []string) (map[string][]domain.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT order_id, product_id, title, size, quantity, price, image_url
		FROM order_items
		WHERE order_id = ANY($1::text[])
		ORDER BY order_id, position
	`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	defer rows.Close()

	itemsByID := make(map[string][]domain.Item, len(orderIDs))
	for rows.Next() {
		var (
			orderID string
			item    domain.Item
		)
		if err := rows.Scan(&orderID, &item.ProductID, &item.Title, &item.Size,
			&item.Quantity, &item.Price, &item.ImageURL); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		itemsByID[orderID] = append(itemsByID[orderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("items rows: %w", err)
	}
	return itemsByID, nil
}

// ensureExists — ErrOrderNotFound, если заказа нет; nil иначе.
func (r *OrderRepository) ensureExists(ctx context.Context, orderID string) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, orderID).Scan(&exists); err != nil {
		return fmt.Errorf("check order: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}
	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		order        domain.Order
		status       string
		addrJSON     []byte
		shipmentJSON []byte
	)
	if err := row.Scan(
		&order.ID, &order.UserID, &order.PaymentSessionID, &order.PaymentIntentID, &order.FulfillmentOrderID,
		&status, &order.TotalAmount, &addrJSON, &shipmentJSON, &order.DraftClaimedAt, &order.ConfirmedAt,
		&order.Version, &order.CreatedAt, &order.UpdatedAt,
	); err != nil {
		return nil, err
	}
	order.Status = domain.Status(status)

	if len(addrJSON) > 0 {
		var addr domain.ShippingAddress
		if err := json.Unmarshal(addrJSON, &addr); err != nil {
			return nil, fmt.Errorf("decode shipping_address: %w", err)
		}
		order.ShippingAddress = &addr
	}
	if len(shipmentJSON) > 0 {
		var shipment domain.Shipment
		if err := json.Unmarshal(shipmentJSON, &shipment); err != nil {
			return nil, fmt.Errorf("decode shipment: %w", err)
		}
		order.Shipment = &shipment
	}
	return &order, nil
}

// copyItems — вставка позиций через COPY (CopyFromRows); быстрее, чем INSERT в цикле.
func copyItems(ctx context.Context, tx pgx.Tx, orderID string, items []domain.Item) error {
	rows := make([][]any, 0, len(items))
	for i, item := range items {
		rows = append(rows, []any{orderID, int32(i), item.ProductID, item.Title, item.Size,
			item.Quantity, item.Price, item.ImageURL})
	}

	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"order_items"},
		[]string{"order_id", "position", "product_id", "title", "size", "quantity", "price", "image_url"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy items: %w", err)
	}
	return nil
}
