package commands

import (
	"context"
	"fmt"

	"tour-booking/internal/domain/client"
	"tour-booking/internal/domain/history"
	"tour-booking/internal/infra"
	"tour-booking/internal/pkg/errs"
	"tour-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateClientRequest struct {
	Name  string
	Phone string
	Email string
}

type ClientCommands interface {
	Create(ctx context.Context, req CreateClientRequest, actor history.Actor) (uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID, actor history.Actor) error
}

type clientUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewClientUseCase(uow shared.UnitOfWork) ClientCommands {
	return &clientUseCaseImpl{uow: uow}
}

func (uc *clientUseCaseImpl) Create(ctx context.Context, req CreateClientRequest, actor history.Actor) (uuid.UUID, error) {
	c, err := client.NewClient(req.Name, req.Phone, req.Email)
	if err != nil {
		return uuid.Nil, wrapDomainErr(err)
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Clients().Create(ctx, tx.DB(), c)
		if derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return errs.Mark(derr, errs.ErrStateConflict)
			}
			return derr
		}
		createdID = id

		entry := history.NewEntry(history.KindClient, id, actor, "Client created",
			fmt.Sprintf("Client %s registered with phone %s", req.Name, req.Phone))
		return tx.History().Append(ctx, tx.DB(), entry)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return createdID, nil
}

// Delete soft-deletes a client. Clients with a reservation still in
// progress cannot be removed.
func (uc *clientUseCaseImpl) Delete(ctx context.Context, id uuid.UUID, actor history.Actor) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Clients().FindByID(ctx, tx.DB(), id)
		if err != nil {
			return wrapClientErr(err)
		}

		open, err := tx.Reservations().CountOpenByClient(ctx, tx.DB(), id)
		if err != nil {
			return err
		}
		if open > 0 {
			return errs.Mark(client.ErrOpenReservations, errs.ErrStateConflict)
		}

		if err = c.Deactivate(); err != nil {
			return wrapDomainErr(err)
		}
		if err = tx.Clients().Update(ctx, tx.DB(), c); err != nil {
			return err
		}

		entry := history.NewEntry(history.KindClient, id, actor, "Client deleted",
			"Client deactivated")
		return tx.History().Append(ctx, tx.DB(), entry)
	})
}
