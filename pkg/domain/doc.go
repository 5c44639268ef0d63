package domain

// domain package contains the Domain Models and Interfaces for the tabstat application.
//
// `domain/tabstat` package exposes the root Database object for the application.
// Entrypoints of applications should instantiate the Database object and use it to interact with the domain.
//
// `domain/ENTITY.go` has high-level entities (Domain Model types) and functions.
// For example, `domain/dataset.go` contains the `Dataset` entity.
//
// `domain/ENTITY/db` directory contains the client interface to handle the domain entity in RDB,
// and `domain/ENTITY/db/postgres` contains its PostgreSQL implementation.
// `domain/ENTITY/db/mock` contains hand-written mocks for handler and task tests.
//
// # Entities
//
// Core entities in the domain are:
//
// - `project`: Namespace grouping Datasets. Removing a Project is refused while Datasets remain in it.
//
// - `dataset`: An uploaded CSV table. The row metadata lives in RDB and the CSV body lives in
// blob storage (`domain/dataset/blob`; local directory or S3-compatible object storage).
// Statistical questions about a Dataset (preview, summary, quality, correlations) are answered
// by loading the body into a frame (`domain/analysis/frame`).
//
// - `job`: Execution of a configured pipeline and the record of the execution.
// Jobs are registered as `pending` by the API server and claimed by the worker
// (`cmd/tabstat-worker`), which runs the pipeline command and finishes the Job
// as `completed` or `failed`.
//
// - `analysis`: Cached result of a correlation analysis over a Dataset, keyed by
// (dataset, analysis type, threshold). Computed on demand by `domain/analysis/correlation`
// and invalidated when the Dataset is removed.
//
// - `user`: Account for API access. Passwords are stored as bcrypt hashes and sessions are
// carried as JWT bearer tokens (`domain/auth`).
//
// And others:
//
// - `schema`: Manages the database schema version and its migrations.
