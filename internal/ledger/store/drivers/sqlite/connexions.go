package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/recouvro/recouvro/internal/ledger/domain"
	"github.com/recouvro/recouvro/internal/ledger/store"
)

type connexionsRepo struct {
	db dbtx
}

func (r *connexionsRepo) AppendEvent(ctx context.Context, e domain.ConnexionEvent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO connexions (id, user_id, username, action, date_action)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Username, string(e.Action), fmtTime(e.DateAction),
	)
	return err
}

func connexionWhere(f store.ConnexionFilter) (string, []any) {
	var conds []string
	var args []any

	if s := strings.TrimSpace(f.SearchUser); s != "" {
		conds = append(conds, `instr(lower(username), lower(?)) > 0`)
		args = append(args, s)
	}
	if f.Action != "" {
		conds = append(conds, `action = ?`)
		args = append(args, string(f.Action))
	}
	if f.DateDebut != nil {
		conds = append(conds, `date_action >= ?`)
		args = append(args, fmtTime(domain.DateOnly(*f.DateDebut)))
	}
	if f.DateFin != nil {
		// inclusive end of day
		conds = append(conds, `date_action < ?`)
		args = append(args, fmtTime(domain.DateOnly(*f.DateFin).AddDate(0, 0, 1)))
	}

	if len(conds) == 0 {
		return ``, nil
	}
	return ` WHERE ` + strings.Join(conds, ` AND `), args
}

func (r *connexionsRepo) ListEvents(ctx context.Context, f store.ConnexionFilter) ([]domain.ConnexionEvent, error) {
	where, args := connexionWhere(f)

	query := `SELECT id, user_id, username, action, date_action
		 FROM connexions` + where + ` ORDER BY date_action DESC, id DESC`
	if f.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ConnexionEvent
	for rows.Next() {
		var (
			e      domain.ConnexionEvent
			action string
			date   string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Username, &action, &date); err != nil {
			return nil, err
		}
		e.Action = domain.ConnexionAction(action)
		e.DateAction = parseTimeCol(date)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *connexionsRepo) CountEvents(ctx context.Context, f store.ConnexionFilter) (int64, error) {
	where, args := connexionWhere(f)

	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM connexions`+where, args...).Scan(&count)
	return count, err
}

func (r *connexionsRepo) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM connexions WHERE date_action < ?`, fmtTime(cutoff))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
