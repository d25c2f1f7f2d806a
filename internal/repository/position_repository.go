package repository

import (
	"database/sql"
	"fmt"

	"github.com/stockgame/Stock-Game-Backend/internal/apperrors"
	"github.com/stockgame/Stock-Game-Backend/internal/model"
)

// PositionRepository provides data access methods for the position table.
// Positions are the game's only stored entity; everything else is derived
// per valuation pass.
type PositionRepository struct {
	db *sql.DB
}

// NewPositionRepository creates a new PositionRepository with the provided database connection.
func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// GetPositions retrieves every stored position. Returns an empty slice when
// no positions exist; the valuation pipeline treats that as a defined
// empty-result state, not an error.
func (r *PositionRepository) GetPositions() ([]model.Position, error) {
	query := `
          SELECT id, player, symbol, sizing_mode, shares, fraction, bankroll, entry_price, entry_date
          FROM position
          ORDER BY player, symbol
      `

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query position table: %w", err)
	}
	defer rows.Close()

	positions := []model.Position{}
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating position table: %w", err)
	}

	return positions, nil
}

// GetPosition retrieves a single position by ID.
func (r *PositionRepository) GetPosition(id string) (model.Position, error) {
	query := `
          SELECT id, player, symbol, sizing_mode, shares, fraction, bankroll, entry_price, entry_date
          FROM position
          WHERE id = ?
      `

	row := r.db.QueryRow(query, id)
	p, err := scanPosition(row)
	if err == sql.ErrNoRows {
		return model.Position{}, apperrors.ErrPositionNotFound
	}
	if err != nil {
		return model.Position{}, err
	}
	return p, nil
}

// CreatePosition inserts a new position. The caller supplies a validated
// position with its ID already assigned.
func (r *PositionRepository) CreatePosition(p model.Position) error {
	query := `
          INSERT INTO position (id, player, symbol, sizing_mode, shares, fraction, bankroll, entry_price, entry_date)
          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
      `

	_, err := r.db.Exec(
		query,
		p.ID,
		p.Player,
		p.Symbol,
		string(p.Mode),
		nullableFloat(p.Shares),
		nullableFloat(p.Fraction),
		nullableFloat(p.Bankroll),
		nullableFloat(p.EntryPrice),
		p.EntryDate.Format("2006-01-02"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert position: %w", err)
	}
	return nil
}

// DeletePosition removes a position by ID. Deleting an unknown ID returns
// ErrPositionNotFound.
func (r *PositionRepository) DeletePosition(id string) error {
	result, err := r.db.Exec("DELETE FROM position WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPositionNotFound
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanPosition(row scanner) (model.Position, error) {
	var p model.Position
	var mode string
	var shares, fraction, bankroll, entryPrice sql.NullFloat64
	var entryDate string

	err := row.Scan(
		&p.ID,
		&p.Player,
		&p.Symbol,
		&mode,
		&shares,
		&fraction,
		&bankroll,
		&entryPrice,
		&entryDate,
	)
	if err == sql.ErrNoRows {
		return model.Position{}, err
	}
	if err != nil {
		return model.Position{}, fmt.Errorf("failed to scan position table results: %w", err)
	}

	p.Mode = model.SizingMode(mode)
	p.Shares = shares.Float64
	p.Fraction = fraction.Float64
	p.Bankroll = bankroll.Float64
	p.EntryPrice = entryPrice.Float64

	p.EntryDate, err = ParseTime(entryDate)
	if err != nil {
		return model.Position{}, err
	}

	return p, nil
}

// nullableFloat maps a zero value to SQL NULL so unused sizing-mode fields
// stay empty in the table.
func nullableFloat(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: v != 0}
}
