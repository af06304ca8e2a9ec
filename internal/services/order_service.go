package services

import (
	"context"
	"math"
	"time"

	"pharmacore/internal/common"
	"pharmacore/internal/models"
	"pharmacore/internal/repositories"
	"pharmacore/pkg/database"
)

// OrderServiceInterface defines the order workflow operations
type OrderServiceInterface interface {
	NewDraft(orderType string) (*OrderDraft, error)
	AddLine(ctx context.Context, draft *OrderDraft, medicineID int64, quantity int) error
	Commit(ctx context.Context, draft *OrderDraft, customerID, employeeID int64) (*models.Order, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	ListOrders(ctx context.Context, limit, offset int) ([]*models.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]*models.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

// OrderDraft accumulates priced lines before commit. Prices are
// snapshotted when the line is added; the conditional stock decrement at
// commit is what guarantees nothing oversells.
type OrderDraft struct {
	OrderType     string
	PaymentMethod string // defaults to cash at commit
	Lines         []*models.OrderItem
	committed     bool
}

// Total sums the line subtotals.
func (d *OrderDraft) Total() float64 {
	total := 0.0
	for _, line := range d.Lines {
		total += line.Subtotal
	}
	return total
}

type orderService struct {
	db        TxRunner
	orders    repositories.OrderRepository
	items     repositories.OrderItemRepository
	medicines repositories.MedicineRepository
	customers repositories.CustomerRepository
	sales     repositories.SaleRepository
	payments  repositories.PaymentRepository
}

// NewOrderService creates a new order service instance
func NewOrderService(
	db TxRunner,
	orders repositories.OrderRepository,
	items repositories.OrderItemRepository,
	medicines repositories.MedicineRepository,
	customers repositories.CustomerRepository,
	sales repositories.SaleRepository,
	payments repositories.PaymentRepository,
) OrderServiceInterface {
	return &orderService{
		db:        db,
		orders:    orders,
		items:     items,
		medicines: medicines,
		customers: customers,
		sales:     sales,
		payments:  payments,
	}
}

// NewDraft starts an empty order of the given type.
func (s *orderService) NewDraft(orderType string) (*OrderDraft, error) {
	if err := common.ValidateOrderType(orderType); err != nil {
		return nil, err
	}
	return &OrderDraft{OrderType: orderType}, nil
}

// AddLine validates the quantity against current stock and appends a line
// with a unit-price snapshot (wholesale price for wholesale orders).
// Adding a medicine already on the draft merges into the existing line,
// keeping it unique per order so the item insert never collides.
func (s *orderService) AddLine(ctx context.Context, draft *OrderDraft, medicineID int64, quantity int) error {
	if draft.committed {
		return common.NewValidationError("order", "order is already committed")
	}
	if err := common.ValidatePositiveInteger(quantity, "quantity", maxStockAdjustment); err != nil {
		return err
	}

	medicine, err := s.medicines.GetByID(ctx, medicineID)
	if err != nil {
		return err
	}

	for _, line := range draft.Lines {
		if line.MedicineID != medicineID {
			continue
		}
		merged := line.Quantity + quantity
		if err := common.ValidatePositiveInteger(merged, "quantity", maxStockAdjustment); err != nil {
			return err
		}
		if medicine.Quantity < merged {
			return &common.InsufficientStockError{MedicineID: medicineID, Requested: merged}
		}
		line.Quantity = merged
		line.Subtotal = line.UnitPrice * float64(merged)
		return nil
	}

	if medicine.Quantity < quantity {
		return &common.InsufficientStockError{MedicineID: medicineID, Requested: quantity}
	}

	price := medicine.Price
	if draft.OrderType == models.OrderTypeWholesale {
		price = medicine.WholesalePrice
	}

	draft.Lines = append(draft.Lines, &models.OrderItem{
		MedicineID:   medicineID,
		MedicineName: medicine.Name,
		Quantity:     quantity,
		UnitPrice:    price,
		Subtotal:     price * float64(quantity),
	})
	return nil
}

// Commit persists the draft as one transaction: order header, line items,
// a stock reservation per line, a sales record per line, a payment for
// the full amount, and the loyalty award of floor(total x 10) points.
// Any step failing rolls the whole sale back.
func (s *orderService) Commit(ctx context.Context, draft *OrderDraft, customerID, employeeID int64) (*models.Order, error) {
	if draft.committed {
		return nil, common.NewValidationError("order", "order is already committed")
	}
	if len(draft.Lines) == 0 {
		return nil, common.NewValidationError("items", "order must have at least one line")
	}

	order := &models.Order{
		CustomerID:  customerID,
		EmployeeID:  employeeID,
		OrderType:   draft.OrderType,
		TotalAmount: draft.Total(),
		OrderDate:   time.Now(),
		Items:       draft.Lines,
	}

	method := draft.PaymentMethod
	if method == "" {
		method = "cash"
	}

	err := s.db.WithTx(ctx, func(tx database.DBTX) error {
		orders := s.orders.WithTx(tx)
		items := s.items.WithTx(tx)
		sales := s.sales.WithTx(tx)
		payments := s.payments.WithTx(tx)
		customers := s.customers.WithTx(tx)
		ledger := NewStockLedger(s.medicines.WithTx(tx))

		if err := orders.Create(ctx, order); err != nil {
			return err
		}

		for _, line := range order.Items {
			line.OrderID = order.ID
			if err := items.Insert(ctx, line); err != nil {
				return err
			}
			if err := ledger.Reserve(ctx, line.MedicineID, line.Quantity); err != nil {
				return err
			}
			if err := sales.Insert(ctx, &models.Sale{
				MedicineID: line.MedicineID,
				CustomerID: customerID,
				EmployeeID: employeeID,
				Quantity:   line.Quantity,
				TotalPrice: line.Subtotal,
				SaleDate:   order.OrderDate,
			}); err != nil {
				return err
			}
		}

		if err := payments.Insert(ctx, &models.Payment{
			CustomerID: customerID,
			OrderID:    &order.ID,
			Amount:     order.TotalAmount,
			Method:     method,
			PaidAt:     order.OrderDate,
		}); err != nil {
			return err
		}

		points := int(math.Floor(order.TotalAmount * 10))
		return customers.AddLoyaltyPoints(ctx, customerID, points)
	})
	if err != nil {
		return nil, err
	}

	draft.committed = true
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, limit, offset int) ([]*models.Order, error) {
	limit, offset, err := common.ValidatePaginationParams(limit, offset)
	if err != nil {
		return nil, err
	}
	return s.orders.List(ctx, limit, offset)
}

func (s *orderService) ListOrdersByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]*models.Order, error) {
	limit, offset, err := common.ValidatePaginationParams(limit, offset)
	if err != nil {
		return nil, err
	}
	return s.orders.ListByCustomer(ctx, customerID, limit, offset)
}

// DeleteOrder removes line items before the header. Stock is not
// restored: a committed sale already left the building.
func (s *orderService) DeleteOrder(ctx context.Context, id int64) error {
	return s.db.WithTx(ctx, func(tx database.DBTX) error {
		if err := s.items.WithTx(tx).DeleteByOrder(ctx, id); err != nil {
			return err
		}
		return s.orders.WithTx(tx).Delete(ctx, id)
	})
}
