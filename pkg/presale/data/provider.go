package data

import (
	pg "github.com/plasma-fi/presale-server/pkg/database/postgres"
)

type Provider interface {
	DatabaseData

	GetDatabaseDataProvider() DatabaseData
}

type provider struct {
	*DatabaseProvider
}

func NewDataProvider(dbConfig *pg.Config) (Provider, error) {
	db, err := NewDatabaseProvider(dbConfig)
	if err != nil {
		return nil, err
	}

	return &provider{
		DatabaseProvider: db.(*DatabaseProvider),
	}, nil
}

func NewTestDataProvider() Provider {
	return &provider{
		DatabaseProvider: NewTestDatabaseProvider().(*DatabaseProvider),
	}
}

func (p *provider) GetDatabaseDataProvider() DatabaseData {
	return p.DatabaseProvider
}
