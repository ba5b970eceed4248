package repo

import (
	"github.com/GlebRadaev/recordbook/internal/pg"
	recordrepo "github.com/GlebRadaev/recordbook/internal/repo/record-repo"
	"github.com/GlebRadaev/recordbook/internal/service/recordservice"
)

type Repositories struct {
	RecordRepo recordservice.Repo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		RecordRepo: recordrepo.New(conn, txManager),
	}
}
