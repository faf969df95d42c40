package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/GuiTheDevv/shipping-management/internal/shipment/domain"
	"github.com/GuiTheDevv/shipping-management/pkg/db"
	"github.com/GuiTheDevv/shipping-management/pkg/db/pagination"
	"gorm.io/gorm"
)

const shipmentColumns = `shipment_id, customer_id, origin, destination, weight, volume, carrier, mode, status, arrival_date, departure_date, delivered_date`

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Truncate(ctx context.Context, conn *gorm.DB) error {
	stmt := `DELETE FROM shipments`
	switch db.DialectName(conn) {
	case db.TypePostgres, db.TypeMySQL:
		stmt = `TRUNCATE TABLE shipments`
	}
	return conn.WithContext(ctx).Exec(stmt).Error
}

func (r *repo) InsertBatch(ctx context.Context, conn *gorm.DB, shipments []domain.Shipment) error {
	if len(shipments) == 0 {
		return nil
	}
	return conn.WithContext(ctx).Create(&shipments).Error
}

func (r *repo) FindByID(ctx context.Context, conn *gorm.DB, id int64) (*domain.Shipment, error) {
	var shipment domain.Shipment
	err := conn.WithContext(ctx).Raw(
		`SELECT `+shipmentColumns+` FROM shipments WHERE shipment_id = ?`,
		id,
	).Scan(&shipment).Error
	if err != nil {
		return nil, err
	}
	if shipment.ShipmentID == 0 {
		return nil, nil
	}
	return &shipment, nil
}

func (r *repo) List(ctx context.Context, conn *gorm.DB, filter domain.Filter, page pagination.Pagination) ([]domain.Shipment, error) {
	var shipments []domain.Shipment
	stmt := applyFilter(conn.WithContext(ctx).Model(&domain.Shipment{}), filter)
	if page.Limit > 0 {
		stmt = stmt.Offset(page.Offset()).Limit(page.Limit)
	}
	err := stmt.
		Order("shipment_id asc").
		Find(&shipments).Error
	if err != nil {
		return nil, err
	}
	return shipments, nil
}

func (r *repo) Count(ctx context.Context, conn *gorm.DB, filter domain.Filter) (int64, error) {
	var total int64
	err := applyFilter(conn.WithContext(ctx).Model(&domain.Shipment{}), filter).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repo) Stream(ctx context.Context, conn *gorm.DB, filter domain.Filter, fn func(domain.Shipment) error) error {
	if fn == nil {
		return errors.New("stream callback is required")
	}
	stmt := applyFilter(conn.WithContext(ctx).Model(&domain.Shipment{}), filter).
		Order("shipment_id asc")

	rows, err := stmt.Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var shipment domain.Shipment
		if err := conn.ScanRows(rows, &shipment); err != nil {
			return err
		}
		if err := fn(shipment); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *repo) SumVolumeByStatus(ctx context.Context, conn *gorm.DB, status domain.Status) (float64, error) {
	var total float64
	err := conn.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(volume), 0) FROM shipments WHERE status = ?`,
		status,
	).Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func applyFilter(stmt *gorm.DB, filter domain.Filter) *gorm.DB {
	if filter.Status != nil {
		stmt = stmt.Where("status = ?", string(*filter.Status))
	}
	if filter.Carrier != nil {
		stmt = stmt.Where("carrier = ?", string(*filter.Carrier))
	}
	if filter.Destination != nil {
		stmt = stmt.Where("destination = ?", string(*filter.Destination))
	}
	if filter.Mode != nil {
		stmt = stmt.Where("mode = ?", string(*filter.Mode))
	}
	if filter.ArrivalFrom != "" {
		stmt = stmt.Where("arrival_date >= ?", filter.ArrivalFrom)
	}
	if filter.ArrivalTo != "" {
		stmt = stmt.Where("arrival_date <= ?", filter.ArrivalTo)
	}
	if filter.RequireDeparture {
		stmt = stmt.Where("departure_date IS NOT NULL AND departure_date <> ''")
	}
	if filter.Search != nil {
		stmt = applySearch(stmt, *filter.Search)
	}
	return stmt
}

// likeEscaper neutralizes LIKE wildcards. '!' is used as the escape
// character because a backslash needs dialect-specific quoting in MySQL.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func applySearch(stmt *gorm.DB, search domain.Search) *gorm.DB {
	like := "%" + likeEscaper.Replace(strings.ToLower(search.Term)) + "%"

	clauses := []string{
		"LOWER(COALESCE(origin, '')) LIKE ? ESCAPE '!'",
		"LOWER(carrier) LIKE ? ESCAPE '!'",
	}
	args := []any{like, like}

	if search.NumericID != nil {
		clauses = append(clauses, "shipment_id = ?", "customer_id = ?")
		args = append(args, *search.NumericID, *search.NumericID)
	}
	if len(search.Destinations) > 0 {
		codes := make([]string, 0, len(search.Destinations))
		for _, d := range search.Destinations {
			codes = append(codes, string(d))
		}
		clauses = append(clauses, "destination IN ?")
		args = append(args, codes)
	}

	return stmt.Where("("+strings.Join(clauses, " OR ")+")", args...)
}
