package server

import (
	"fmt"
	"time"
)

type Marshalled[S any] interface {
	trySeal(string) S
}

// seal marshalled object.
//
// this function CAN CAUSE PANIC if misconfiguration is found.
//
// All types named `pkg/configs/server.XxxMarshall` are `Marshalled[*Xxx]` .
func TrySeal[S any](conf Marshalled[S]) S {
	return conf.trySeal("(root)")
}

type ServerConfigMarshall struct {
	Port     int32                 `yaml:"port"`
	Database string                `yaml:"database"`
	Blob     *BlobConfigMarshall   `yaml:"blob"`
	Auth     *AuthConfigMarshall   `yaml:"auth"`
	Worker   *WorkerConfigMarshall `yaml:"worker,omitempty"`
}

var _ Marshalled[*ServerConfig] = &ServerConfigMarshall{}

func (m *ServerConfigMarshall) trySeal(path string) *ServerConfig {
	worker := m.Worker
	if worker == nil {
		worker = &WorkerConfigMarshall{}
	}
	return &ServerConfig{
		port:     required(m.Port, path+".port"),
		database: required(m.Database, path+".database"),
		blob:     nonnil(m.Blob, path+".blob").trySeal(path + ".blob"),
		auth:     nonnil(m.Auth, path+".auth").trySeal(path + ".auth"),
		worker:   worker.trySeal(path + ".worker"),
	}
}

type BlobConfigMarshall struct {
	Backend string                   `yaml:"backend"`
	Local   *LocalBlobConfigMarshall `yaml:"local,omitempty"`
	Minio   *MinioBlobConfigMarshall `yaml:"minio,omitempty"`
}

func (m *BlobConfigMarshall) trySeal(path string) *BlobConfig {
	switch BlobBackend(required(m.Backend, path+".backend")) {
	case BlobBackendLocal:
		return &BlobConfig{
			backend: BlobBackendLocal,
			local:   nonnil(m.Local, path+".local").trySeal(path + ".local"),
		}
	case BlobBackendMinio:
		return &BlobConfig{
			backend: BlobBackendMinio,
			minio:   nonnil(m.Minio, path+".minio").trySeal(path + ".minio"),
		}
	default:
		panic(fmt.Sprintf(
			`%s.backend should be "%s" or "%s", but "%s"`,
			path, BlobBackendLocal, BlobBackendMinio, m.Backend,
		))
	}
}

type LocalBlobConfigMarshall struct {
	Root string `yaml:"root"`
}

func (m *LocalBlobConfigMarshall) trySeal(path string) *LocalBlobConfig {
	return &LocalBlobConfig{
		root: required(m.Root, path+".root"),
	}
}

type MinioBlobConfigMarshall struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	UseSSL    bool   `yaml:"useSSL,omitempty"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix,omitempty"`
}

func (m *MinioBlobConfigMarshall) trySeal(path string) *MinioBlobConfig {
	return &MinioBlobConfig{
		endpoint:  required(m.Endpoint, path+".endpoint"),
		accessKey: required(m.AccessKey, path+".accessKey"),
		secretKey: required(m.SecretKey, path+".secretKey"),
		useSSL:    m.UseSSL,
		bucket:    required(m.Bucket, path+".bucket"),
		prefix:    m.Prefix,
	}
}

type AuthConfigMarshall struct {
	Secret      string `yaml:"secret"`
	TokenExpiry string `yaml:"tokenExpiry,omitempty"`
}

func (m *AuthConfigMarshall) trySeal(path string) *AuthConfig {
	expiry := 24 * time.Hour
	if m.TokenExpiry != "" {
		var err error
		expiry, err = time.ParseDuration(m.TokenExpiry)
		if err != nil {
			panic(fmt.Errorf("%s.tokenExpiry can not be parsed: %w", path, err))
		}
	}

	return &AuthConfig{
		secret:      required(m.Secret, path+".secret"),
		tokenExpiry: expiry,
	}
}

type WorkerConfigMarshall struct {
	PollInterval string              `yaml:"pollInterval,omitempty"`
	Pipelines    map[string][]string `yaml:"pipelines,omitempty"`
}

func (m *WorkerConfigMarshall) trySeal(path string) *WorkerConfig {
	interval := 3 * time.Second
	if m.PollInterval != "" {
		var err error
		interval, err = time.ParseDuration(m.PollInterval)
		if err != nil {
			panic(fmt.Errorf("%s.pollInterval can not be parsed: %w", path, err))
		}
	}

	pipelines := m.Pipelines
	if pipelines == nil {
		pipelines = map[string][]string{}
	}
	for name, argv := range pipelines {
		if len(argv) == 0 {
			panic(fmt.Sprintf("%s.pipelines.%s is empty", path, name))
		}
	}

	return &WorkerConfig{
		pollInterval: interval,
		pipelines:    pipelines,
	}
}

func nonnil[T any](v *T, path string) *T {
	if v == nil {
		panic(path + " is required")
	}
	return v
}

func required[T comparable](v T, path string) T {
	if v == *new(T) {
		panic(path + " is required")
	}
	return v
}
