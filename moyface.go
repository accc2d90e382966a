/*
Package moyface is a library for decoding 'new' format MO YOUNG / DA
FIT binary watch face files, as served to the DA FIT app from the
api.moyoung.com /new/ endpoints, and for dumping their embedded images.
*/
package moyface

import (
	"io/ioutil"
	"log"
)

type Tool struct {
	db     *FaceDB
	logger *log.Logger
}

// New opens or creates the catalog database at db. A nil logger
// discards warnings.
func New(db string, logger *log.Logger) (*Tool, error) {
	fdb, err := NewFaceDB(db)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &Tool{
		db:     fdb,
		logger: logger,
	}, nil
}

func (t *Tool) Close() error {
	return t.db.Close()
}
