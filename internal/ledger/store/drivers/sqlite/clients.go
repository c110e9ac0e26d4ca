package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/recouvro/recouvro/internal/ledger/domain"
	"github.com/recouvro/recouvro/internal/ledger/store"
)

type clientsRepo struct {
	db dbtx
}

const clientColumns = `id, nom, telephone, email, montant_du, date_echeance, created_at, updated_at`

func (r *clientsRepo) scanClient(row interface{ Scan(...any) error }) (domain.Client, error) {
	var (
		c                               domain.Client
		dateEcheance, created, updated string
	)
	err := row.Scan(&c.ID, &c.Nom, &c.Telephone, &c.Email, &c.MontantDu, &dateEcheance, &created, &updated)
	if err != nil {
		return domain.Client{}, err
	}
	c.DateEcheance = parseDateCol(dateEcheance)
	c.CreatedAt = parseTimeCol(created)
	c.UpdatedAt = parseTimeCol(updated)
	return c, nil
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)
	c, err := r.scanClient(row)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return c, nil
}

func (r *clientsRepo) GetClientByEmail(ctx context.Context, email string) (domain.Client, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE email = ? COLLATE NOCASE`, email)
	c, err := r.scanClient(row)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return c, nil
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (id, nom, telephone, email, montant_du, date_echeance, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Nom, c.Telephone, c.Email, c.MontantDu,
		fmtDate(c.DateEcheance), fmtTime(c.CreatedAt), fmtTime(c.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *clientsRepo) UpdateClient(ctx context.Context, c domain.Client) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE clients
		 SET nom = ?, telephone = ?, email = ?, montant_du = ?, date_echeance = ?, updated_at = ?
		 WHERE id = ?`,
		c.Nom, c.Telephone, c.Email, c.MontantDu,
		fmtDate(c.DateEcheance), fmtTime(c.UpdatedAt), c.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ApplyPaiement decrements montant_du in a single UPDATE so the
// read-modify-write happens inside the database and concurrent
// payments serialize instead of losing updates. The balance is clamped
// at zero.
func (r *clientsRepo) ApplyPaiement(ctx context.Context, clientID string, montant int64, now time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE clients
		 SET montant_du = MAX(0, montant_du - ?), updated_at = ?
		 WHERE id = ?`,
		montant, fmtTime(now), clientID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *clientsRepo) DeleteClient(ctx context.Context, clientID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, clientID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// clientWhere builds the conjunctive WHERE clause for a filter. Status
// is evaluated against f.Today right in SQL: ISO dates compare
// lexically, so date_echeance < today means overdue.
func clientWhere(f store.ClientFilter) (string, []any) {
	var conds []string
	var args []any

	if s := strings.TrimSpace(f.Search); s != "" {
		conds = append(conds, `instr(lower(nom), lower(?)) > 0`)
		args = append(args, s)
	}
	switch f.Statut {
	case domain.StatutRetard:
		conds = append(conds, `date_echeance < ?`)
		args = append(args, fmtDate(f.Today))
	case domain.StatutAvenir:
		conds = append(conds, `date_echeance >= ?`)
		args = append(args, fmtDate(f.Today))
	}
	if f.MontantMin != nil {
		conds = append(conds, `montant_du >= ?`)
		args = append(args, *f.MontantMin)
	}
	if f.MontantMax != nil {
		conds = append(conds, `montant_du <= ?`)
		args = append(args, *f.MontantMax)
	}

	if len(conds) == 0 {
		return ``, nil
	}
	return ` WHERE ` + strings.Join(conds, ` AND `), args
}

func (r *clientsRepo) ListClients(ctx context.Context, f store.ClientFilter) ([]domain.Client, error) {
	where, args := clientWhere(f)

	query := `SELECT ` + clientColumns + ` FROM clients` + where + ` ORDER BY id ASC`
	if f.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Client
	for rows.Next() {
		c, err := r.scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *clientsRepo) CountClients(ctx context.Context, f store.ClientFilter) (int64, error) {
	where, args := clientWhere(f)

	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`+where, args...).Scan(&count)
	return count, err
}

func (r *clientsRepo) SumMontantsByStatut(ctx context.Context, today time.Time) (avenir, retard int64, err error) {
	err = r.db.QueryRowContext(ctx,
		`SELECT
			COALESCE(SUM(CASE WHEN date_echeance >= ? THEN montant_du ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN date_echeance < ? THEN montant_du ELSE 0 END), 0)
		 FROM clients`,
		fmtDate(today), fmtDate(today),
	).Scan(&avenir, &retard)
	return avenir, retard, err
}

func (r *clientsRepo) Repartition(ctx context.Context, today time.Time) (payes, enRetard, total int64, err error) {
	err = r.db.QueryRowContext(ctx,
		`SELECT
			COALESCE(SUM(CASE WHEN montant_du = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN date_echeance < ? THEN 1 ELSE 0 END), 0),
			COUNT(*)
		 FROM clients`,
		fmtDate(today),
	).Scan(&payes, &enRetard, &total)
	return payes, enRetard, total, err
}

func (r *clientsRepo) TotalDu(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(montant_du), 0) FROM clients`).Scan(&total)
	return total, err
}
