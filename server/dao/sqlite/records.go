package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/dekarrin/rezi"
	"github.com/google/uuid"

	"github.com/dekarrin/phpsyn/server/dao"
	"github.com/dekarrin/phpsyn/server/serr"
)

// ParseRecordsDB is a dao.ParseRecordRepository backed by a SQLite table.
type ParseRecordsDB struct {
	db *sql.DB
}

func (r *ParseRecordsDB) init() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS parse_records (
			id TEXT PRIMARY KEY NOT NULL,
			source_hash TEXT NOT NULL,
			byte_length INTEGER NOT NULL,
			created INTEGER NOT NULL,
			detail BLOB NOT NULL
		)
	`)
	return err
}

func (r *ParseRecordsDB) Close() error { return nil }

// parseRecordDetail is the part of a dao.ParseRecord that is rezi-encoded
// into a single blob column rather than given its own columns, mirroring
// how the reference store packs its game-state column.
type parseRecordDetail struct {
	NodeCount    int
	ElapsedNanos int64
	ErrorMessage string
}

func convertToDB_Detail(rec dao.ParseRecord) ([]byte, error) {
	d := parseRecordDetail{
		NodeCount:    rec.NodeCount,
		ElapsedNanos: rec.Elapsed.Nanoseconds(),
		ErrorMessage: rec.ErrorMessage,
	}
	return rezi.EncBinary(d)
}

func convertFromDB_Detail(data []byte, rec *dao.ParseRecord) error {
	var d parseRecordDetail
	n, err := rezi.DecBinary(data, &d)
	if err != nil {
		return serr.New("REZI decode", err, dao.ErrDecodingFailure)
	}
	if n != len(data) {
		return serr.New("REZI decoded byte count mismatch", dao.ErrDecodingFailure)
	}

	rec.NodeCount = d.NodeCount
	rec.Elapsed = time.Duration(d.ElapsedNanos)
	rec.ErrorMessage = d.ErrorMessage
	return nil
}

func (r *ParseRecordsDB) Create(ctx context.Context, rec dao.ParseRecord) (dao.ParseRecord, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return dao.ParseRecord{}, err
	}
	rec.ID = id
	if rec.Created.IsZero() {
		rec.Created = time.Now()
	}

	detail, err := convertToDB_Detail(rec)
	if err != nil {
		return dao.ParseRecord{}, serr.New("encode detail", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO parse_records (id, source_hash, byte_length, created, detail)
		VALUES (?, ?, ?, ?, ?)
	`, rec.ID.String(), rec.SourceHash, rec.ByteLength, rec.Created.Unix(), detail)
	if err != nil {
		return dao.ParseRecord{}, wrapDBError(err)
	}

	return rec, nil
}

func (r *ParseRecordsDB) scanRow(row *sql.Row) (dao.ParseRecord, error) {
	var rec dao.ParseRecord
	var idStr string
	var created int64
	var detail []byte

	err := row.Scan(&idStr, &rec.SourceHash, &rec.ByteLength, &created, &detail)
	if err != nil {
		return dao.ParseRecord{}, wrapDBError(err)
	}

	rec.ID, err = uuid.Parse(idStr)
	if err != nil {
		return dao.ParseRecord{}, serr.New("decode id", err, dao.ErrDecodingFailure)
	}
	rec.Created = time.Unix(created, 0)

	if err := convertFromDB_Detail(detail, &rec); err != nil {
		return dao.ParseRecord{}, err
	}

	return rec, nil
}

func (r *ParseRecordsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.ParseRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, source_hash, byte_length, created, detail FROM parse_records WHERE id = ?
	`, id.String())
	return r.scanRow(row)
}

func (r *ParseRecordsDB) GetPage(ctx context.Context, offset, limit int) ([]dao.ParseRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, source_hash, byte_length, created, detail
		FROM parse_records
		ORDER BY created DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var out []dao.ParseRecord
	for rows.Next() {
		var rec dao.ParseRecord
		var idStr string
		var created int64
		var detail []byte

		if err := rows.Scan(&idStr, &rec.SourceHash, &rec.ByteLength, &created, &detail); err != nil {
			return nil, wrapDBError(err)
		}

		rec.ID, err = uuid.Parse(idStr)
		if err != nil {
			return nil, serr.New("decode id", err, dao.ErrDecodingFailure)
		}
		rec.Created = time.Unix(created, 0)

		if err := convertFromDB_Detail(detail, &rec); err != nil {
			return nil, err
		}

		out = append(out, rec)
	}

	return out, rows.Err()
}
