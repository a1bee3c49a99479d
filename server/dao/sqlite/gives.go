package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/cmdbook/server/dao"
	"github.com/google/uuid"
)

type GivesDB struct {
	db *sql.DB
}

func (repo *GivesDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS gives (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL,
		targets TEXT NOT NULL,
		stack TEXT NOT NULL,
		drop_items INTEGER NOT NULL,
		created INTEGER NOT NULL
	);`)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *GivesDB) Create(ctx context.Context, g dao.Give) (dao.Give, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Give{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.PrepareContext(ctx, `INSERT INTO gives (id, user_id, targets, stack, drop_items, created) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Give{}, wrapDBError(err)
	}
	defer stmt.Close()

	now := time.Now()
	_, err = stmt.ExecContext(
		ctx,
		convertToDB_UUID(newUUID),
		convertToDB_UUID(g.UserID),
		convertToDB_Targets(g.Targets),
		convertToDB_ItemStack(g.Stack),
		convertToDB_Bool(g.Drop),
		convertToDB_Time(now),
	)
	if err != nil {
		return dao.Give{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *GivesDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Give, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT id, user_id, targets, stack, drop_items, created FROM gives WHERE id = ?;`,
		convertToDB_UUID(id),
	)

	var g dao.Give
	if err := scanGive(row.Scan, &g); err != nil {
		return dao.Give{}, err
	}
	return g, nil
}

func (repo *GivesDB) GetAll(ctx context.Context) ([]dao.Give, error) {
	return repo.query(ctx, `SELECT id, user_id, targets, stack, drop_items, created FROM gives ORDER BY rowid;`)
}

func (repo *GivesDB) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]dao.Give, error) {
	return repo.query(ctx, `SELECT id, user_id, targets, stack, drop_items, created FROM gives WHERE user_id = ? ORDER BY rowid;`, convertToDB_UUID(userID))
}

func (repo *GivesDB) Close() error {
	return repo.db.Close()
}

func (repo *GivesDB) query(ctx context.Context, q string, args ...any) ([]dao.Give, error) {
	rows, err := repo.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Give

	for rows.Next() {
		var g dao.Give
		if err := scanGive(rows.Scan, &g); err != nil {
			return all, err
		}
		all = append(all, g)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

// scanGive scans the columns id, user_id, targets, stack, drop_items, and
// created, in that order, into g.
func scanGive(scan func(dest ...any) error, g *dao.Give) error {
	var id string
	var userID string
	var targets string
	var stack string
	var drop int64
	var created int64

	err := scan(
		&id,
		&userID,
		&targets,
		&stack,
		&drop,
		&created,
	)
	if err != nil {
		return wrapDBError(err)
	}

	err = convertFromDB_UUID(id, &g.ID)
	if err != nil {
		return fmt.Errorf("stored UUID %q is invalid: %w", id, err)
	}
	err = convertFromDB_UUID(userID, &g.UserID)
	if err != nil {
		return fmt.Errorf("stored user UUID %q is invalid: %w", userID, err)
	}
	err = convertFromDB_Targets(targets, &g.Targets)
	if err != nil {
		return fmt.Errorf("stored targets %q are invalid: %w", targets, err)
	}
	err = convertFromDB_ItemStack(stack, &g.Stack)
	if err != nil {
		return fmt.Errorf("stored stack %q is invalid: %w", stack, err)
	}
	err = convertFromDB_Bool(drop, &g.Drop)
	if err != nil {
		return fmt.Errorf("stored drop_items %d is invalid: %w", drop, err)
	}
	err = convertFromDB_Time(created, &g.Created)
	if err != nil {
		return fmt.Errorf("stored created time %d is invalid: %w", created, err)
	}

	return nil
}
