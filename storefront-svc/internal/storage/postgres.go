package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"bistro-storefront/storefront-svc/internal/domain"
)

// PostgresRepository talks to the restaurant backend's schema directly.
type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) FetchCatalog(ctx context.Context) ([]domain.FoodItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT m.ma_mon, m.ten_mon, m.gia, COALESCE(m.hinh_anh, ''), COALESCE(l.ten_loai, '')
		FROM mon_an m
		LEFT JOIN loai_mon l ON l.ma_loai = m.ma_loai
		ORDER BY m.ma_mon`)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var items []domain.FoodItem
	for rows.Next() {
		var row domain.CatalogItemPayload
		var category string
		if err := rows.Scan(&row.MaMon, &row.TenMon, &row.Gia, &row.HinhAnh, &category); err != nil {
			log.Printf("[storefront-svc] catalog row scan error: %v", err)
			continue
		}
		if category != "" {
			row.LoaiMon = &domain.CategoryPayload{TenLoai: category}
		}
		item, err := row.Normalize()
		if err != nil {
			log.Printf("WARNING: skipping catalog row: %v", err)
			continue
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) FetchPromotions(ctx context.Context) ([]domain.Promotion, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT ma_km, COALESCE(ma_ap_dung, ''), ten_km, loai_giam_gia, gia_tri_giam, ngay_bat_dau, ngay_ket_thuc
		FROM khuyen_mai
		ORDER BY ma_km`)
	if err != nil {
		return nil, fmt.Errorf("query promotions: %w", err)
	}
	defer rows.Close()

	var promotions []domain.Promotion
	for rows.Next() {
		var row domain.PromotionPayload
		var id int64
		var code string
		var start, end time.Time
		if err := rows.Scan(&id, &code, &row.TenKM, &row.LoaiGiamGia, &row.GiaTriGiam, &start, &end); err != nil {
			log.Printf("[storefront-svc] promotion row scan error: %v", err)
			continue
		}
		row.MaKM = domain.FlexID(fmt.Sprint(id))
		row.MaApDung = domain.FlexID(code)
		row.NgayBatDau = start.Format("2006-01-02")
		row.NgayKetThuc = end.Format("2006-01-02")
		promo, err := row.Normalize()
		if err != nil {
			log.Printf("WARNING: skipping promotion row: %v", err)
			continue
		}
		promotions = append(promotions, promo)
	}
	return promotions, rows.Err()
}

// SubmitOrder writes the order and its lines in one transaction. The token is
// not used; database access is already authenticated.
func (r *PostgresRepository) SubmitOrder(ctx context.Context, _ string, order domain.OrderSubmission) (domain.SubmissionReceipt, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return domain.SubmissionReceipt{}, fmt.Errorf("begin order transaction: %w", err)
	}
	defer tx.Rollback()

	var promotionID sql.NullString
	if order.PromotionID != nil && *order.PromotionID != "" {
		promotionID = sql.NullString{String: string(*order.PromotionID), Valid: true}
	}

	var orderID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO don_hang (dia_chi, so_dien_thoai, phuong_thuc_thanh_toan, ma_km, so_tien_giam, trang_thai)
		VALUES ($1, $2, $3, $4, $5, 'cho_xac_nhan')
		RETURNING ma_don_hang`,
		order.ShippingInfo.DiaChi, order.ShippingInfo.SoDienThoai, string(order.PaymentMethod), promotionID, order.DiscountAmount,
	).Scan(&orderID)
	if err != nil {
		return domain.SubmissionReceipt{}, fmt.Errorf("insert order: %w", err)
	}

	for _, line := range order.ChiTietList {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO chi_tiet_don_hang (ma_don_hang, ma_mon, so_luong, don_gia)
			SELECT $1, ma_mon, $3, gia FROM mon_an WHERE ma_mon = $2`,
			orderID, line.MaMon, line.SoLuong); err != nil {
			return domain.SubmissionReceipt{}, fmt.Errorf("insert order line %d: %w", line.MaMon, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.SubmissionReceipt{}, fmt.Errorf("commit order: %w", err)
	}
	return domain.SubmissionReceipt{ID: fmt.Sprint(orderID)}, nil
}

func (r *PostgresRepository) SubmitReservation(ctx context.Context, _ string, res domain.ReservationSubmission) (domain.SubmissionReceipt, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return domain.SubmissionReceipt{}, fmt.Errorf("begin reservation transaction: %w", err)
	}
	defer tx.Rollback()

	var reservationID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO dat_ban (ho_ten, so_dien_thoai, email, thoi_gian_bat_dau, so_nguoi, ghi_chu)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ma_dat_ban`,
		res.HoTen, res.SoDienThoai, res.Email, res.ThoiGianBatDau, res.SoNguoi, res.GhiChu,
	).Scan(&reservationID)
	if err != nil {
		return domain.SubmissionReceipt{}, fmt.Errorf("insert reservation: %w", err)
	}

	for _, dish := range res.CartItems {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO chi_tiet_dat_ban (ma_dat_ban, ma_mon, so_luong, ghi_chu)
			VALUES ($1, $2, $3, $4)`,
			reservationID, dish.MaMon, dish.SoLuong, dish.GhiChu); err != nil {
			return domain.SubmissionReceipt{}, fmt.Errorf("insert reserved dish %d: %w", dish.MaMon, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.SubmissionReceipt{}, fmt.Errorf("commit reservation: %w", err)
	}
	return domain.SubmissionReceipt{ID: fmt.Sprint(reservationID)}, nil
}
