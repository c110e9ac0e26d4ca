package sqlite

import (
	"context"

	"github.com/recouvro/recouvro/internal/ledger/domain"
)

type paiementsRepo struct {
	db dbtx
}

func (r *paiementsRepo) CreatePaiement(ctx context.Context, p domain.Paiement) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO paiements (id, client_id, montant, date_paiement, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.ClientID, p.Montant, fmtDate(p.DatePaiement), fmtTime(p.CreatedAt),
	)
	return err
}

func (r *paiementsRepo) ListPaiementsByClient(ctx context.Context, clientID string) ([]domain.Paiement, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, client_id, montant, date_paiement, created_at
		 FROM paiements
		 WHERE client_id = ?
		 ORDER BY id DESC`,
		clientID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Paiement
	for rows.Next() {
		var (
			p             domain.Paiement
			date, created string
		)
		if err := rows.Scan(&p.ID, &p.ClientID, &p.Montant, &date, &created); err != nil {
			return nil, err
		}
		p.DatePaiement = parseDateCol(date)
		p.CreatedAt = parseTimeCol(created)
		out = append(out, p)
	}
	return out, rows.Err()
}
