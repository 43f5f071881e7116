package promotion

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SeatBookingService/internal/domain"
	"github.com/m04kA/SMC-SeatBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SeatBookingService/pkg/pgerr"
	"github.com/m04kA/SMC-SeatBookingService/pkg/psqlbuilder"
)

// Repository репозиторий правил пакетов и промо-предложений
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория промо
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetPackageRules получает правила пакетов плана. Выбор правила по числу месяцев делает движок цены.
func (r *Repository) GetPackageRules(ctx context.Context, libraryID, planID int64) ([]*domain.PackageRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"library_id",
		"plan_id",
		"months",
		"percent_off",
		"created_at",
		"updated_at",
	).
		From("package_rules").
		Where(squirrel.Eq{"library_id": libraryID, "plan_id": planID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPackageRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsConflict(err) {
			return nil, fmt.Errorf("%w: %w: GetPackageRules - execute query: %v", ErrExecQuery, pgerr.ErrConflict, err)
		}
		return nil, fmt.Errorf("%w: GetPackageRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.PackageRule, 0)
	for rows.Next() {
		var rule domain.PackageRule
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(
			&rule.ID,
			&rule.LibraryID,
			&rule.PlanID,
			&rule.Months,
			&rule.PercentOff,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetPackageRules - scan row: %v", ErrScanRow, err)
		}
		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		if pgerr.IsConflict(err) {
			return nil, fmt.Errorf("%w: %w: GetPackageRules - rows error: %v", ErrScanRow, pgerr.ErrConflict, err)
		}
		return nil, fmt.Errorf("%w: GetPackageRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// GetOffersByCode получает предложения библиотеки с купоном code (без учёта регистра).
// Срок действия и таргетинг проверяет движок цены, чтобы различать причины отказа.
func (r *Repository) GetOffersByCode(ctx context.Context, libraryID int64, code string) ([]*domain.Offer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"library_id",
		"title",
		"coupon_code",
		"discount_pct",
		"flat_amount",
		"max_discount",
		"valid_from",
		"valid_to",
		"plan_ids",
		"slot_pools",
		"new_users_only",
		"once_per_user",
		"created_at",
		"updated_at",
	).
		From("offers").
		Where(squirrel.Eq{"library_id": libraryID}).
		Where(squirrel.Expr("UPPER(coupon_code) = ?", strings.ToUpper(strings.TrimSpace(code)))).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOffersByCode - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsConflict(err) {
			return nil, fmt.Errorf("%w: %w: GetOffersByCode - execute query: %v", ErrExecQuery, pgerr.ErrConflict, err)
		}
		return nil, fmt.Errorf("%w: GetOffersByCode - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	offers := make([]*domain.Offer, 0)
	for rows.Next() {
		var o domain.Offer
		var planIDs []int64
		var pools []string
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(
			&o.ID,
			&o.LibraryID,
			&o.Title,
			&o.CouponCode,
			&o.DiscountPct,
			&o.FlatAmount,
			&o.MaxDiscount,
			&o.ValidFrom,
			&o.ValidTo,
			pq.Array(&planIDs),
			pq.Array(&pools),
			&o.NewUsersOnly,
			&o.OncePerUser,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetOffersByCode - scan row: %v", ErrScanRow, err)
		}

		o.PlanIDs = planIDs
		o.SlotPools = make(domain.SlotPools, len(pools))
		for i, p := range pools {
			o.SlotPools[i] = domain.SlotPool(p)
		}
		o.CreatedAt = createdAt.Time
		o.UpdatedAt = updatedAt.Time
		offers = append(offers, &o)
	}

	if err := rows.Err(); err != nil {
		if pgerr.IsConflict(err) {
			return nil, fmt.Errorf("%w: %w: GetOffersByCode - rows error: %v", ErrScanRow, pgerr.ErrConflict, err)
		}
		return nil, fmt.Errorf("%w: GetOffersByCode - rows error: %v", ErrScanRow, err)
	}

	return offers, nil
}
