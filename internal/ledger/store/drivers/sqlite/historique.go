package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/recouvro/recouvro/internal/ledger/domain"
	"github.com/recouvro/recouvro/internal/ledger/store"
)

type historiqueRepo struct {
	db dbtx
}

func (r *historiqueRepo) AppendEntry(ctx context.Context, e domain.HistoryEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO historique (id, action, client_id, client_nom, details, modifie_par, date_modification)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, string(e.Action), mapOptionalString(e.ClientID), e.ClientNom,
		e.Details, e.ModifiePar, fmtTime(e.DateModification),
	)
	return err
}

func historiqueWhere(f store.HistoriqueFilter) (string, []any) {
	var conds []string
	var args []any

	if s := strings.TrimSpace(f.SearchClient); s != "" {
		conds = append(conds, `instr(lower(client_nom), lower(?)) > 0`)
		args = append(args, s)
	}
	if f.Action != "" {
		conds = append(conds, `action = ?`)
		args = append(args, string(f.Action))
	}
	if f.DateDebut != nil {
		conds = append(conds, `date_modification >= ?`)
		args = append(args, fmtTime(domain.DateOnly(*f.DateDebut)))
	}
	if f.DateFin != nil {
		// inclusive end of day
		conds = append(conds, `date_modification < ?`)
		args = append(args, fmtTime(domain.DateOnly(*f.DateFin).AddDate(0, 0, 1)))
	}

	if len(conds) == 0 {
		return ``, nil
	}
	return ` WHERE ` + strings.Join(conds, ` AND `), args
}

func (r *historiqueRepo) ListEntries(ctx context.Context, f store.HistoriqueFilter) ([]domain.HistoryEntry, error) {
	where, args := historiqueWhere(f)

	query := `SELECT id, action, client_id, client_nom, details, modifie_par, date_modification
		 FROM historique` + where + ` ORDER BY date_modification DESC, id DESC`
	if f.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HistoryEntry
	for rows.Next() {
		var (
			e        domain.HistoryEntry
			action   string
			clientID sql.NullString
			date     string
		)
		if err := rows.Scan(&e.ID, &action, &clientID, &e.ClientNom, &e.Details, &e.ModifiePar, &date); err != nil {
			return nil, err
		}
		e.Action = domain.Action(action)
		e.ClientID = mapNullString(clientID)
		e.DateModification = parseTimeCol(date)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *historiqueRepo) CountEntries(ctx context.Context, f store.HistoriqueFilter) (int64, error) {
	where, args := historiqueWhere(f)

	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM historique`+where, args...).Scan(&count)
	return count, err
}
