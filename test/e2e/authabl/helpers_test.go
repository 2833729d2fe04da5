package authabl_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/authabl/internal/auth/domain"
)

/*
 * Common constants and helper functions for the authabl end-to-end tests.
 * This includes container setup, API helpers, and assertions. The stack is
 * the real thing: the service image built from the repo Dockerfile plus a
 * MinIO container backing the archive blob store.
 */

const (
	testImageName  = "authabl-test:latest"
	minioImageName = "minio/minio:RELEASE.2025-04-22T22-12-26Z"

	superadminSecret = "test-superadmin-secret-12345"
	accessSecret     = "e2e-access-token-secret-0123456789"
	refreshSecret    = "e2e-refresh-token-secret-0123456789"

	minioUser     = "minioadmin"
	minioPassword = "minioadmin"
	minioBucket   = "authabl-archives"

	testEmail    = "alice@example.com"
	testUsername = "alice"
	testPassword = "Hunter2Hunter2!"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete. The whole package is
// skipped when Docker is not available.
func TestMain(m *testing.M) {
	if err := exec.Command("docker", "info").Run(); err != nil {
		fmt.Fprintln(os.Stdout, "Docker unavailable, skipping e2e tests")
		os.Exit(0)
	}

	fmt.Fprintf(os.Stdout, "Building authabl Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up authabl Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image from the repo root.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/authabl/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	cmd := exec.Command("docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupStack starts MinIO plus the authabl service on a shared network and
// returns the service base URL. Cleanup tears both containers down.
func setupStack(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	net, err := network.New(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := net.Remove(ctx); err != nil {
			t.Logf("failed to remove network: %v", err)
		}
	})

	minioContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        minioImageName,
			ExposedPorts: []string{"9000/tcp"},
			Cmd:          []string{"server", "/data"},
			Env: map[string]string{
				"MINIO_ROOT_USER":     minioUser,
				"MINIO_ROOT_PASSWORD": minioPassword,
			},
			Networks:       []string{net.Name},
			NetworkAliases: map[string][]string{net.Name: {"minio"}},
			WaitingFor: wait.ForHTTP("/minio/health/live").
				WithPort("9000/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := minioContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate minio container: %v", err)
		}
	})

	appContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Env: map[string]string{
				"AUTHABL_ISSUER":               "authabl-e2e",
				"AUTHABL_ACCESS_TOKEN_SECRET":  accessSecret,
				"AUTHABL_REFRESH_TOKEN_SECRET": refreshSecret,
				"AUTHABL_SUPERADMIN_SECRET":    superadminSecret,
				"AUTHABL_DATABASE_FILE":        "/tmp/authabl.db",
				"AUTHABL_BLOB_DRIVER":          "minio",
				"AUTHABL_MINIO_ENDPOINT":       "minio:9000",
				"AUTHABL_MINIO_ACCESS_KEY":     minioUser,
				"AUTHABL_MINIO_SECRET_KEY":     minioPassword,
				"AUTHABL_MINIO_BUCKET":         minioBucket,
				"ENV":                          "test",
				"LOG_LEVEL":                    "info",
				"LOG_FORMAT":                   "json",
			},
			Networks: []string{net.Name},
			WaitingFor: wait.ForHTTP("/livez").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := appContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate authabl container: %v", err)
		}
	})

	mappedPort, err := appContainer.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := appContainer.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

// apiClient drives the HTTP surface the way a client application would: a
// cookie jar for the web flows and the per-client API key on every request.
type apiClient struct {
	t       *testing.T
	baseURL string
	apiKey  string
	http    *http.Client
}

func newAPIClient(t *testing.T, baseURL, apiKey string) *apiClient {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &apiClient{
		t:       t,
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Jar: jar, Timeout: 10 * time.Second},
	}
}

// do sends a JSON request and decodes the JSON response body into out (when
// out is non-nil and the body is non-empty). It returns the status code.
func (c *apiClient) do(method, path string, body, out any) int {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-AUTHABL-API-KEY", c.apiKey)
	}

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)

	if out != nil && len(raw) > 0 {
		require.NoError(c.t, json.Unmarshal(raw, out), "body: %s", raw)
	}
	return resp.StatusCode
}

// doBearer is do for the mobile flows: no body, the token presented in the
// Authorization header instead of cookies.
func (c *apiClient) doBearer(method, path, token string, out any) int {
	c.t.Helper()

	req, err := http.NewRequest(method, c.baseURL+path, nil)
	require.NoError(c.t, err)
	req.Header.Set("X-AUTHABL-API-KEY", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req) // no jar, cookies must not leak in
	require.NoError(c.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)

	if out != nil && len(raw) > 0 {
		require.NoError(c.t, json.Unmarshal(raw, out), "body: %s", raw)
	}
	return resp.StatusCode
}

// cookieValue reads a named cookie from the jar for the service base URL.
func (c *apiClient) cookieValue(name string) string {
	c.t.Helper()

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/", nil)
	require.NoError(c.t, err)

	for _, cookie := range c.http.Jar.Cookies(req.URL) {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

// createTestClient registers an application through the superadmin surface
// and returns it with its generated secret.
func createTestClient(t *testing.T, baseURL string) domain.Client {
	t.Helper()

	admin := newAPIClient(t, baseURL, superadminSecret)

	var client domain.Client
	status := admin.do(http.MethodPost, "/clients", map[string]any{
		"name":                 "e2e app",
		"accessTokenValidity":  3600,
		"refreshTokenValidity": 86400,
	}, &client)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, client.ID)
	require.NotEmpty(t, client.Secret)

	return client
}

// registerResponse mirrors the registration response body.
type registerResponse struct {
	User             domain.User `json:"user"`
	VerificationCode string      `json:"verificationCode"`
}

// registerTestUser creates the standard test user under the given client.
func registerTestUser(t *testing.T, api *apiClient, clientID string) registerResponse {
	t.Helper()

	var resp registerResponse
	status := api.do(http.MethodPost, "/users/"+clientID, map[string]any{
		"email":    testEmail,
		"username": testUsername,
		"password": testPassword,
		"role":     "member",
	}, &resp)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, resp.User.ID)

	return resp
}

// loginWeb performs the cookie-based login and asserts both cookies landed
// in the jar.
func loginWeb(t *testing.T, api *apiClient, clientID string) domain.User {
	t.Helper()

	var user domain.User
	status := api.do(http.MethodPost, "/tokens/"+clientID+"/web", map[string]any{
		"login":    testEmail,
		"password": testPassword,
	}, &user)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, api.cookieValue("accesstoken"))
	require.NotEmpty(t, api.cookieValue("refreshtoken"))

	return user
}
