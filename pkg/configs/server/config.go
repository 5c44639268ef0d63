package server

import (
	"time"
)

type ServerConfig struct {
	port     int32
	database string
	blob     *BlobConfig
	auth     *AuthConfig
	worker   *WorkerConfig
}

func (c *ServerConfig) Port() int32 {
	return c.port
}

// Connection string for database.
func (c *ServerConfig) Database() string {
	return c.database
}

func (c *ServerConfig) Blob() *BlobConfig {
	return c.blob
}

func (c *ServerConfig) Auth() *AuthConfig {
	return c.auth
}

func (c *ServerConfig) Worker() *WorkerConfig {
	return c.worker
}

// BlobBackend selects where dataset payloads are kept.
type BlobBackend string

const (
	BlobBackendLocal BlobBackend = "local"
	BlobBackendMinio BlobBackend = "minio"
)

type BlobConfig struct {
	backend BlobBackend
	local   *LocalBlobConfig
	minio   *MinioBlobConfig
}

func (b *BlobConfig) Backend() BlobBackend {
	return b.backend
}

// Settings of the "local" backend. Nil unless Backend() is local.
func (b *BlobConfig) Local() *LocalBlobConfig {
	return b.local
}

// Settings of the "minio" backend. Nil unless Backend() is minio.
func (b *BlobConfig) Minio() *MinioBlobConfig {
	return b.minio
}

type LocalBlobConfig struct {
	root string
}

// Directory where blobs are laid out.
func (l *LocalBlobConfig) Root() string {
	return l.root
}

type MinioBlobConfig struct {
	endpoint  string
	accessKey string
	secretKey string
	useSSL    bool
	bucket    string
	prefix    string
}

func (m *MinioBlobConfig) Endpoint() string {
	return m.endpoint
}

func (m *MinioBlobConfig) AccessKey() string {
	return m.accessKey
}

func (m *MinioBlobConfig) SecretKey() string {
	return m.secretKey
}

func (m *MinioBlobConfig) UseSSL() bool {
	return m.useSSL
}

func (m *MinioBlobConfig) Bucket() string {
	return m.bucket
}

// Key prefix inside the bucket. May be empty.
func (m *MinioBlobConfig) Prefix() string {
	return m.prefix
}

type AuthConfig struct {
	secret      string
	tokenExpiry time.Duration
}

// Key to sign and verify bearer tokens.
func (a *AuthConfig) Secret() string {
	return a.secret
}

// Time to live of issued tokens. default = 24h
func (a *AuthConfig) TokenExpiry() time.Duration {
	return a.tokenExpiry
}

type WorkerConfig struct {
	pollInterval time.Duration
	pipelines    map[string][]string
}

// How long the worker sleeps between looking for claimable jobs.
// default = 3s
func (w *WorkerConfig) PollInterval() time.Duration {
	return w.pollInterval
}

// Pipelines maps each submittable pipeline name to the command line
// executing it. Treat the returned map as readonly.
func (w *WorkerConfig) Pipelines() map[string][]string {
	return w.pipelines
}
