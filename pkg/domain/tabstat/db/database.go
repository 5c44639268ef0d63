package db

import (
	kanalysis "github.com/statops/tabstat/pkg/domain/analysis/db"
	kdataset "github.com/statops/tabstat/pkg/domain/dataset/db"
	kjob "github.com/statops/tabstat/pkg/domain/job/db"
	kproject "github.com/statops/tabstat/pkg/domain/project/db"
	kschema "github.com/statops/tabstat/pkg/domain/schema/db"
	kuser "github.com/statops/tabstat/pkg/domain/user/db"
)

type Database interface {
	Projects() kproject.Interface
	Datasets() kdataset.Interface
	Jobs() kjob.Interface
	Users() kuser.Interface
	Analyses() kanalysis.Interface
	Schema() kschema.SchemaInterface
	Close() error
}
