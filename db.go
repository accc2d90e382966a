package moyface

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// FaceDB is the catalog of scanned watch face files.
type FaceDB struct {
	db *sql.DB
}

// FaceRecord is one catalog row.
type FaceRecord struct {
	Path     string
	SHA1     string
	ApiVer   int
	Revision int
	Width    int
	Height   int
	Elements int
	Images   int
}

func NewFaceDB(file string) (*FaceDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS face (id INTEGER PRIMARY KEY NOT NULL, path STRING NOT NULL UNIQUE, sha1 TEXT NOT NULL, api_ver INTEGER NOT NULL, revision INTEGER NOT NULL, width INTEGER, height INTEGER, elements INTEGER, images INTEGER)"); err != nil {
		return nil, err
	}

	return &FaceDB{
		db: db,
	}, nil
}

func (db *FaceDB) Close() error {
	return db.db.Close()
}

// Add inserts or refreshes the catalog row for a face file path.
func (db *FaceDB) Add(f *FaceRecord) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO face (path, sha1, api_ver, revision, width, height, elements, images) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		f.Path, f.SHA1, f.ApiVer, f.Revision, f.Width, f.Height, f.Elements, f.Images); err != nil {
		return err
	}
	return nil
}

// FindBySHA1 returns the first catalog row with the given content
// hash, or nil if none matches.
func (db *FaceDB) FindBySHA1(sha string) (*FaceRecord, error) {
	f := &FaceRecord{SHA1: sha}
	switch err := db.db.QueryRow("SELECT path, api_ver, revision, width, height, elements, images FROM face WHERE sha1 = ?", sha).
		Scan(&f.Path, &f.ApiVer, &f.Revision, &f.Width, &f.Height, &f.Elements, &f.Images); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return f, nil
	default:
		return nil, err
	}
}

// List walks every catalog row in path order.
func (db *FaceDB) List(fn func(*FaceRecord) error) error {
	rows, err := db.db.Query("SELECT path, sha1, api_ver, revision, width, height, elements, images FROM face ORDER BY path")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var f FaceRecord
		if err := rows.Scan(&f.Path, &f.SHA1, &f.ApiVer, &f.Revision, &f.Width, &f.Height, &f.Elements, &f.Images); err != nil {
			return err
		}
		if err := fn(&f); err != nil {
			return err
		}
	}

	return rows.Err()
}
