package tlsroots

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewPool(t *testing.T) {
	pool := NewPool()
	if pool == nil || pool.Pool() == nil {
		t.Fatal("NewPool() returned nil pool")
	}
	if pool.Added() != 0 {
		t.Errorf("Added() = %d, want 0", pool.Added())
	}
}

func TestAddCertPEM(t *testing.T) {
	pool := NewEmptyPool()
	if err := pool.AddCertPEM(generateTestCertPEM(t)); err != nil {
		t.Fatalf("AddCertPEM() error = %v", err)
	}
	if pool.Added() != 1 {
		t.Errorf("Added() = %d, want 1", pool.Added())
	}
}

func TestAddCertPEM_Multiple(t *testing.T) {
	pool := NewEmptyPool()
	data := append(generateTestCertPEM(t), generateTestCertPEM(t)...)
	if err := pool.AddCertPEM(data); err != nil {
		t.Fatalf("AddCertPEM() error = %v", err)
	}
	if pool.Added() != 2 {
		t.Errorf("Added() = %d, want 2", pool.Added())
	}
}

func TestAddCertPEM_NoCerts(t *testing.T) {
	pool := NewEmptyPool()

	if err := pool.AddCertPEM(nil); !errors.Is(err, ErrNoCertsFound) {
		t.Errorf("AddCertPEM(nil) error = %v, want ErrNoCertsFound", err)
	}

	keyOnly := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: []byte("x")})
	if err := pool.AddCertPEM(keyOnly); !errors.Is(err, ErrNoCertsFound) {
		t.Errorf("AddCertPEM(key) error = %v, want ErrNoCertsFound", err)
	}
}

func TestAddCertPEM_InvalidCert(t *testing.T) {
	pool := NewEmptyPool()
	bad := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte("garbage")})
	if err := pool.AddCertPEM(bad); err == nil {
		t.Error("AddCertPEM() expected error for invalid certificate")
	}
}

func TestAddCertFile_NotFound(t *testing.T) {
	if err := NewEmptyPool().AddCertFile("/nonexistent/ca.pem"); err == nil {
		t.Error("AddCertFile() expected error")
	}
}

func TestClientTLSConfig_Empty(t *testing.T) {
	cfg, err := ClientTLSConfig("")
	if err != nil || cfg != nil {
		t.Errorf("ClientTLSConfig(\"\") = %v, %v; want nil, nil", cfg, err)
	}
}

func TestClientTLSConfig_TrustsPrivateCA(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	caFile := filepath.Join(t.TempDir(), "ca.pem")
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: server.Certificate().Raw})
	if err := os.WriteFile(caFile, certPEM, 0600); err != nil {
		t.Fatalf("write ca: %v", err)
	}

	cfg, err := ClientTLSConfig(caFile)
	if err != nil {
		t.Fatalf("ClientTLSConfig() error = %v", err)
	}
	if cfg.MinVersion != tls.VersionTLS12 {
		t.Errorf("MinVersion = %x", cfg.MinVersion)
	}

	client := &http.Client{Transport: &http.Transport{TLSClientConfig: cfg}}
	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("GET with private CA failed: %v", err)
	}
	resp.Body.Close()
}

func generateTestCertPEM(t *testing.T) []byte {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}

	template := &x509.Certificate{
		SerialNumber: big.NewInt(time.Now().UnixNano()),
		Subject: pkix.Name{
			Organization: []string{"Test Org"},
			CommonName:   "test.local",
		},
		NotBefore:             time.Now(),
		NotAfter:              time.Now().Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}

	certDER, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("CreateCertificate() error = %v", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER})
}
