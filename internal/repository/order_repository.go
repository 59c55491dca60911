package repository

import (
	"strings"
	"time"

	"seaside_restaurant/internal/models"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// OrderFilter holds the optional admin listing predicates. Unset fields
// (nil dates, empty strings) leave the listing unrestricted.
type OrderFilter struct {
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
	Search   string
}

// ParseOrderFilter builds a filter from raw query parameters. Statuses that
// are not trackable and dates that are not YYYY-MM-DD are ignored.
func ParseOrderFilter(status, dateFrom, dateTo, search string) OrderFilter {
	var f OrderFilter

	status = strings.TrimSpace(status)
	if models.IsTrackableStatus(status) {
		f.Status = status
	}
	if t, err := time.Parse(dateLayout, strings.TrimSpace(dateFrom)); err == nil {
		f.DateFrom = &t
	}
	if t, err := time.Parse(dateLayout, strings.TrimSpace(dateTo)); err == nil {
		f.DateTo = &t
	}
	f.Search = strings.TrimSpace(search)

	return f
}

func (f OrderFilter) apply(query *gorm.DB) *gorm.DB {
	if f.Status != "" {
		query = query.Where("restaurant_orders.status = ?", f.Status)
	}
	if f.DateFrom != nil {
		query = query.Where("restaurant_orders.order_date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		query = query.Where("restaurant_orders.order_date < ?", f.DateTo.AddDate(0, 0, 1))
	}

	if f.Search == "" {
		return query
	}

	id, hasPrefix, err := models.ParseOrderNumber(f.Search)
	if hasPrefix {
		if err != nil {
			return query.Where("1 = 0")
		}
		return query.Where("restaurant_orders.id = ?", id)
	}

	like := likePattern(f.Search)
	return query.Where(
		"LOWER(restaurant_customer.name) LIKE ? ESCAPE '!' OR LOWER(restaurant_customer.phone) LIKE ? ESCAPE '!' OR "+
			"LOWER(restaurant_orders.delivery_address) LIKE ? ESCAPE '!' OR LOWER(restaurant_orders.phone) LIKE ? ESCAPE '!'",
		like, like, like, like,
	)
}

type StatusCount struct {
	Status string
	Count  int64
}

type OrderRepository interface {
	CreateWithItems(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	ListByCustomer(customerID uint) ([]models.Order, error)
	Search(filter OrderFilter) ([]models.Order, error)
	Count(filter OrderFilter) (int64, error)
	CountByStatus(filter OrderFilter) (map[string]int64, error)
	Recent(limit int) ([]models.Order, error)
	SummarySince(since time.Time) (count int64, revenue int64, err error)
	UpdateStatus(id uint, status string) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateWithItems writes the order header and its lines atomically.
func (r *orderRepository) CreateWithItems(order *models.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		items := order.Items
		order.Items = nil

		if err := tx.Omit("Customer").Create(order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Omit("MenuItem").CreateInBatches(&items, 100).Error; err != nil {
				return err
			}
		}

		order.Items = items
		return nil
	})
}

func (r *orderRepository) withDetails(query *gorm.DB) *gorm.DB {
	return query.Preload("Customer").Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("restaurant_orderitem.id")
	}).Preload("Items.MenuItem")
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.withDetails(r.db).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByCustomer(customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.withDetails(r.db).
		Where("customer_id = ?", customerID).
		Order("order_date desc, id desc").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) filtered(filter OrderFilter) *gorm.DB {
	query := r.db.Model(&models.Order{}).
		Joins("JOIN restaurant_customer ON restaurant_customer.id = restaurant_orders.customer_id")
	return filter.apply(query)
}

func (r *orderRepository) Search(filter OrderFilter) ([]models.Order, error) {
	var orders []models.Order
	err := r.withDetails(r.filtered(filter)).
		Order("restaurant_orders.order_date desc, restaurant_orders.id desc").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Count(filter OrderFilter) (int64, error) {
	var count int64
	err := r.filtered(filter).Count(&count).Error
	return count, err
}

// CountByStatus returns a count for every trackable status, zero included.
func (r *orderRepository) CountByStatus(filter OrderFilter) (map[string]int64, error) {
	var rows []StatusCount
	err := r.filtered(filter).
		Select("restaurant_orders.status AS status, COUNT(*) AS count").
		Group("restaurant_orders.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(models.TrackableStatuses))
	for _, s := range models.TrackableStatuses {
		counts[string(s)] = 0
	}
	for _, row := range rows {
		if _, ok := counts[row.Status]; ok {
			counts[row.Status] = row.Count
		}
	}
	return counts, nil
}

func (r *orderRepository) Recent(limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Customer").
		Order("order_date desc, id desc").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) SummarySince(since time.Time) (int64, int64, error) {
	var row struct {
		Count   int64
		Revenue int64
	}
	err := r.db.Model(&models.Order{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("order_date >= ?", since).
		Scan(&row).Error
	return row.Count, row.Revenue, err
}

func (r *orderRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status).Error
}
