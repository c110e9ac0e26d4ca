package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/recouvro/recouvro/internal/ledger/domain"
	"github.com/recouvro/recouvro/internal/ledger/store"
	"github.com/recouvro/recouvro/pkg/idx"
	"github.com/recouvro/recouvro/pkg/moneyx"
)

// Notifier hands a reminder message off for delivery. The AMQP
// dispatcher is the production implementation; dev setups log instead.
type Notifier interface {
	Send(ctx context.Context, client domain.Client, message string) error
}

// ClientService owns every mutation of the client ledger. Each write
// is paired with its audit entry inside one transaction so neither can
// land without the other.
type ClientService struct {
	Store    store.Store
	Notifier Notifier

	// Now is the clock used for timestamps and status derivation.
	// Injected so tests can pin it.
	Now func() time.Time
}

func (s *ClientService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// ClientInput carries raw client fields as received from the HTTP or
// CSV boundary. Validation and parsing happen here so both boundaries
// share the same rules.
type ClientInput struct {
	Nom          string
	Telephone    string
	Email        string
	MontantDu    string // decimal FCFA, dot or comma separator
	DateEcheance string // YYYY-MM-DD
}

// parseInput validates all fields at once and returns the parsed
// values. A non-nil error is always a *domain.ValidationError carrying
// one message per bad field.
func parseInput(in ClientInput) (telephone string, montant int64, echeance time.Time, err error) {
	verr := domain.NewValidationError()

	if !domain.ValidNom(in.Nom) {
		verr.Add("nom", fmt.Sprintf("le nom doit contenir entre %d et %d caractères", domain.NomMinLen, domain.NomMaxLen))
	}

	telephone, ok := domain.NormalizeTelephone(in.Telephone)
	if !ok {
		verr.Add("telephone", "numéro de téléphone invalide (format +225XXXXXXXX)")
	}

	if !domain.ValidEmail(strings.TrimSpace(in.Email)) {
		verr.Add("email", "adresse email invalide")
	}

	montant, merr := moneyx.ParseCentimes(in.MontantDu)
	if merr != nil {
		verr.Add("montant_du", "montant invalide")
	}

	echeance, derr := domain.ParseDate(strings.TrimSpace(in.DateEcheance))
	if derr != nil {
		verr.Add("date_echeance", "date invalide (format AAAA-MM-JJ)")
	}

	if e := verr.ErrOrNil(); e != nil {
		return "", 0, time.Time{}, e
	}
	return telephone, montant, echeance, nil
}

// AddClient validates the input, creates the client and writes its
// "ajout" audit entry atomically.
func (s *ClientService) AddClient(ctx context.Context, in ClientInput, actor string) (domain.Client, error) {
	telephone, montant, echeance, err := parseInput(in)
	if err != nil {
		return domain.Client{}, err
	}

	now := s.now()
	client := domain.Client{
		ID:           string(idx.New()),
		Nom:          strings.TrimSpace(in.Nom),
		Telephone:    telephone,
		Email:        strings.TrimSpace(in.Email),
		MontantDu:    montant,
		DateEcheance: domain.DateOnly(echeance),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Clients().CreateClient(ctx, client); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailAlreadyUsed
			}
			return err
		}
		return tx.Historique().AppendEntry(ctx, s.auditEntry(
			domain.ActionAjout, &client.ID, client.Nom,
			fmt.Sprintf("Client ajouté (montant dû: %s FCFA)", moneyx.FormatCentimes(client.MontantDu)),
			actor, now,
		))
	})
	if err != nil {
		return domain.Client{}, err
	}
	return client, nil
}

// EditClient validates the input, replaces the client's mutable fields
// and records which ones changed.
func (s *ClientService) EditClient(ctx context.Context, clientID string, in ClientInput, actor string) (domain.Client, error) {
	telephone, montant, echeance, err := parseInput(in)
	if err != nil {
		return domain.Client{}, err
	}

	now := s.now()
	var updated domain.Client

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Clients().GetClientByID(ctx, clientID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrClientNotFound
			}
			return err
		}

		updated = current
		updated.Nom = strings.TrimSpace(in.Nom)
		updated.Telephone = telephone
		updated.Email = strings.TrimSpace(in.Email)
		updated.MontantDu = montant
		updated.DateEcheance = domain.DateOnly(echeance)
		updated.UpdatedAt = now

		if err := tx.Clients().UpdateClient(ctx, updated); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailAlreadyUsed
			}
			return err
		}

		return tx.Historique().AppendEntry(ctx, s.auditEntry(
			domain.ActionModification, &updated.ID, updated.Nom,
			describeChanges(current, updated),
			actor, now,
		))
	})
	if err != nil {
		return domain.Client{}, err
	}
	return updated, nil
}

// DeleteClient removes the client and its payments (cascade) and logs
// the deletion with a snapshot of the name so the audit line stays
// readable afterwards.
func (s *ClientService) DeleteClient(ctx context.Context, clientID string, actor string) error {
	now := s.now()
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		client, err := tx.Clients().GetClientByID(ctx, clientID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrClientNotFound
			}
			return err
		}
		if err := tx.Clients().DeleteClient(ctx, clientID); err != nil {
			return err
		}
		return tx.Historique().AppendEntry(ctx, s.auditEntry(
			domain.ActionSuppression, nil, client.Nom,
			fmt.Sprintf("Client supprimé (montant dû restant: %s FCFA)", moneyx.FormatCentimes(client.MontantDu)),
			actor, now,
		))
	})
}

// ClientDetail is a client together with its payment history.
type ClientDetail struct {
	Client    domain.Client
	Statut    domain.Statut
	Paiements []domain.Paiement
}

// GetClient returns one client with its derived status and payments,
// newest payment first.
func (s *ClientService) GetClient(ctx context.Context, clientID string) (ClientDetail, error) {
	client, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ClientDetail{}, ErrClientNotFound
		}
		return ClientDetail{}, err
	}
	paiements, err := s.Store.Paiements().ListPaiementsByClient(ctx, clientID)
	if err != nil {
		return ClientDetail{}, err
	}
	return ClientDetail{
		Client:    client,
		Statut:    domain.DeriveStatut(client.DateEcheance, s.now()),
		Paiements: paiements,
	}, nil
}

// PaymentInput carries raw payment fields as received from the
// boundary. An empty DatePaiement means the payment is dated today.
type PaymentInput struct {
	Montant      string // decimal FCFA, dot or comma separator
	DatePaiement string // YYYY-MM-DD, must not be in the future
}

// AddPayment records a payment of the given amount against the client.
// The balance decrement is clamped at zero in a single UPDATE, so an
// overpayment settles the debt without going negative. The payment row
// keeps the full amount received.
func (s *ClientService) AddPayment(ctx context.Context, clientID string, in PaymentInput, actor string) (domain.Client, error) {
	verr := domain.NewValidationError()

	centimes, err := moneyx.ParseCentimes(in.Montant)
	if err != nil || centimes <= 0 {
		verr.Add("montant", "le montant du paiement doit être strictement positif")
	}

	now := s.now()
	datePaiement := domain.DateOnly(now)
	if raw := strings.TrimSpace(in.DatePaiement); raw != "" {
		parsed, derr := domain.ParseDate(raw)
		switch {
		case derr != nil:
			verr.Add("date_paiement", "date invalide (format AAAA-MM-JJ)")
		case parsed.After(datePaiement):
			verr.Add("date_paiement", "la date du paiement ne peut pas être dans le futur")
		default:
			datePaiement = parsed
		}
	}

	if e := verr.ErrOrNil(); e != nil {
		return domain.Client{}, e
	}

	var updated domain.Client

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		client, err := tx.Clients().GetClientByID(ctx, clientID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrClientNotFound
			}
			return err
		}

		if err := tx.Clients().ApplyPaiement(ctx, clientID, centimes, now); err != nil {
			return err
		}

		paiement := domain.Paiement{
			ID:           string(idx.New()),
			ClientID:     clientID,
			Montant:      centimes,
			DatePaiement: datePaiement,
			CreatedAt:    now,
		}
		if err := tx.Paiements().CreatePaiement(ctx, paiement); err != nil {
			return err
		}

		if err := tx.Historique().AppendEntry(ctx, s.auditEntry(
			domain.ActionPaiement, &client.ID, client.Nom,
			fmt.Sprintf("Paiement de %s FCFA reçu", moneyx.FormatCentimes(centimes)),
			actor, now,
		)); err != nil {
			return err
		}

		updated, err = tx.Clients().GetClientByID(ctx, clientID)
		return err
	})
	if err != nil {
		return domain.Client{}, err
	}
	return updated, nil
}

// SendReminder logs a relance against the client and hands the message
// to the dispatcher. The audit entry is committed before dispatch: a
// broker outage must not erase the fact that a relance was requested.
func (s *ClientService) SendReminder(ctx context.Context, clientID, message string, actor string) error {
	client, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrClientNotFound
		}
		return err
	}

	now := s.now()
	if strings.TrimSpace(message) == "" {
		message = fmt.Sprintf(
			"Bonjour %s, vous avez un montant de %s FCFA à régler avant le %s.",
			client.Nom, moneyx.FormatCentimes(client.MontantDu), client.DateEcheance.Format(domain.DateFormat),
		)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Historique().AppendEntry(ctx, s.auditEntry(
			domain.ActionRelance, &client.ID, client.Nom,
			fmt.Sprintf("Relance envoyée au %s", client.Telephone),
			actor, now,
		))
	})
	if err != nil {
		return err
	}

	if s.Notifier != nil {
		if err := s.Notifier.Send(ctx, client, message); err != nil {
			return fmt.Errorf("%w: %v", ErrDispatchFailed, err)
		}
	}
	return nil
}

func (s *ClientService) auditEntry(action domain.Action, clientID *string, clientNom, details, actor string, at time.Time) domain.HistoryEntry {
	if strings.TrimSpace(actor) == "" {
		actor = domain.SystemActor
	}
	return domain.HistoryEntry{
		ID:               string(idx.New()),
		Action:           action,
		ClientID:         clientID,
		ClientNom:        clientNom,
		Details:          details,
		ModifiePar:       actor,
		DateModification: at,
	}
}

// describeChanges builds the modification audit detail by naming the
// fields that actually changed.
func describeChanges(before, after domain.Client) string {
	var changed []string
	if before.Nom != after.Nom {
		changed = append(changed, fmt.Sprintf("nom: %q → %q", before.Nom, after.Nom))
	}
	if before.Telephone != after.Telephone {
		changed = append(changed, fmt.Sprintf("téléphone: %s → %s", before.Telephone, after.Telephone))
	}
	if before.Email != after.Email {
		changed = append(changed, fmt.Sprintf("email: %s → %s", before.Email, after.Email))
	}
	if before.MontantDu != after.MontantDu {
		changed = append(changed, fmt.Sprintf("montant dû: %s → %s FCFA",
			moneyx.FormatCentimes(before.MontantDu), moneyx.FormatCentimes(after.MontantDu)))
	}
	if !before.DateEcheance.Equal(after.DateEcheance) {
		changed = append(changed, fmt.Sprintf("échéance: %s → %s",
			before.DateEcheance.Format(domain.DateFormat), after.DateEcheance.Format(domain.DateFormat)))
	}
	if len(changed) == 0 {
		return "Aucun changement"
	}
	return "Modifié: " + strings.Join(changed, ", ")
}
