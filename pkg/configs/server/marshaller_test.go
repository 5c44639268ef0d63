package server_test

import (
	"testing"
	"time"

	kcs "github.com/statops/tabstat/pkg/configs/server"
	"github.com/statops/tabstat/pkg/utils/cmp"
)

func TestConfigMarshall(t *testing.T) {
	t.Run("it loads config from yaml: ", func(t *testing.T) {
		serverYml := []byte(`
port: 12345
database: postgres://tabstat-testing-example:5432/tabstat
blob:
  backend: minio
  minio:
    endpoint: minio.tabstat-testing-example:9000
    accessKey: fake-access-key
    secretKey: fake-secret-key
    useSSL: true
    bucket: tabstat
    prefix: datasets
auth:
  secret: fake-signing-secret
  tokenExpiry: 30m
worker:
  pollInterval: 10s
  pipelines:
    data_processing: ["python", "-m", "pipelines.data_processing"]
`)
		result, err := kcs.Unmarshal(serverYml)

		if err != nil {
			t.Errorf("failed to parse config.: %v", err)
		}

		t.Run(".port", func(t *testing.T) {
			actual := result.Port()
			expected := int32(12345)
			if actual != expected {
				t.Errorf("mismatch. (expected, actual) = (%d, %d)", expected, actual)
			}
		})

		t.Run(".database", func(t *testing.T) {
			actual := result.Database()
			expected := "postgres://tabstat-testing-example:5432/tabstat"
			if actual != expected {
				t.Errorf("mismatch. (expected, actual) = (%s, %s)", expected, actual)
			}
		})

		t.Run(".blob.backend", func(t *testing.T) {
			actual := result.Blob().Backend()
			expected := kcs.BlobBackendMinio
			if actual != expected {
				t.Errorf("mismatch. (expected, actual) = (%s, %s)", expected, actual)
			}
			if result.Blob().Local() != nil {
				t.Error("local settings should stay nil for the minio backend")
			}
		})

		t.Run(".blob.minio", func(t *testing.T) {
			minio := result.Blob().Minio()
			if minio.Endpoint() != "minio.tabstat-testing-example:9000" {
				t.Errorf("endpoint mismatch: %s", minio.Endpoint())
			}
			if minio.AccessKey() != "fake-access-key" || minio.SecretKey() != "fake-secret-key" {
				t.Error("credentials mismatch")
			}
			if !minio.UseSSL() {
				t.Error("useSSL should be true")
			}
			if minio.Bucket() != "tabstat" || minio.Prefix() != "datasets" {
				t.Errorf("bucket/prefix mismatch: %s / %s", minio.Bucket(), minio.Prefix())
			}
		})

		t.Run(".auth", func(t *testing.T) {
			if actual := result.Auth().Secret(); actual != "fake-signing-secret" {
				t.Errorf("secret mismatch: %s", actual)
			}
			if actual := result.Auth().TokenExpiry(); actual != 30*time.Minute {
				t.Errorf("tokenExpiry mismatch: %v", actual)
			}
		})

		t.Run(".worker", func(t *testing.T) {
			if actual := result.Worker().PollInterval(); actual != 10*time.Second {
				t.Errorf("pollInterval mismatch: %v", actual)
			}
			pipelines := result.Worker().Pipelines()
			if len(pipelines) != 1 {
				t.Fatalf("pipelines mismatch: %v", pipelines)
			}
			expected := []string{"python", "-m", "pipelines.data_processing"}
			if !cmp.SliceEq(pipelines["data_processing"], expected) {
				t.Errorf("mismatch. (expected, actual) = (%v, %v)", expected, pipelines["data_processing"])
			}
		})
	})

	t.Run("defaults fill the optional values: ", func(t *testing.T) {
		serverYml := []byte(`
port: 8080
database: postgres://example:5432/tabstat
blob:
  backend: local
  local:
    root: /data/blobs
auth:
  secret: fake-signing-secret
`)
		result, err := kcs.Unmarshal(serverYml)
		if err != nil {
			t.Fatalf("failed to parse config.: %v", err)
		}

		if actual := result.Auth().TokenExpiry(); actual != 24*time.Hour {
			t.Errorf("default tokenExpiry mismatch: %v", actual)
		}
		if actual := result.Worker().PollInterval(); actual != 3*time.Second {
			t.Errorf("default pollInterval mismatch: %v", actual)
		}
		if pipelines := result.Worker().Pipelines(); len(pipelines) != 0 {
			t.Errorf("pipelines should default empty: %v", pipelines)
		}
		if actual := result.Blob().Local().Root(); actual != "/data/blobs" {
			t.Errorf("local root mismatch: %s", actual)
		}
	})

	for name, serverYml := range map[string][]byte{
		"missing port": []byte(`
database: postgres://example:5432/tabstat
blob:
  backend: local
  local:
    root: /data/blobs
auth:
  secret: fake-signing-secret
`),
		"missing auth secret": []byte(`
port: 8080
database: postgres://example:5432/tabstat
blob:
  backend: local
  local:
    root: /data/blobs
auth: {}
`),
		"unknown blob backend": []byte(`
port: 8080
database: postgres://example:5432/tabstat
blob:
  backend: s3ish
auth:
  secret: fake-signing-secret
`),
		"backend section missing for declared backend": []byte(`
port: 8080
database: postgres://example:5432/tabstat
blob:
  backend: minio
auth:
  secret: fake-signing-secret
`),
		"empty pipeline command": []byte(`
port: 8080
database: postgres://example:5432/tabstat
blob:
  backend: local
  local:
    root: /data/blobs
auth:
  secret: fake-signing-secret
worker:
  pipelines:
    broken: []
`),
	} {
		t.Run("it panics on misconfiguration: "+name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("no panic unexpectedly")
				}
			}()
			_, _ = kcs.Unmarshal(serverYml)
		})
	}
}

func TestLoadServerConfig(t *testing.T) {
	t.Run("it can be created from a config file", func(t *testing.T) {
		result, err := kcs.LoadServerConfig("./testdata/config.yaml")

		if err != nil {
			t.Fatalf("failed to parse config.: %v", err)
		}
		if expected := int32(8080); result.Port() != expected {
			t.Errorf("unmatch port:%d, expected:%d", result.Port(), expected)
		}
		expectedURI := "postgres://tabstat-test-pgdb-svc:32555/tabstat"
		if result.Database() != expectedURI {
			t.Errorf("unmatch database:%s, expected:%s", result.Database(), expectedURI)
		}
		if result.Blob().Backend() != kcs.BlobBackendLocal {
			t.Errorf("unmatch blob backend:%s", result.Blob().Backend())
		}
		if expected := 12 * time.Hour; result.Auth().TokenExpiry() != expected {
			t.Errorf("unmatch tokenExpiry:%v, expected:%v", result.Auth().TokenExpiry(), expected)
		}
		if len(result.Worker().Pipelines()) != 2 {
			t.Errorf("unmatch pipelines:%v", result.Worker().Pipelines())
		}
	})
}
