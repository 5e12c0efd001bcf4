package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/tree"
	"github.com/MKhiriev/go-file-keeper/internal/utils"
	"github.com/MKhiriev/go-file-keeper/models"
)

const (
	fileKeyHeader = "X-File-Key"

	defaultRequestTimeout = 30 * time.Second
)

// Config points a client at a server.
type Config struct {
	// HTTPAddress is the server address; "host:port" gets an http scheme.
	HTTPAddress string

	// RequestTimeout bounds every call. Zero means 30 seconds.
	RequestTimeout time.Duration
}

type httpClient struct {
	client *utils.HTTPClient

	mu      sync.RWMutex
	session models.Session

	logger *logger.Logger
}

// NewHTTPClient constructs an HTTP/REST implementation of [FileKeeperClient].
// It returns [ErrInvalidAddr] when cfg.HTTPAddress cannot be turned into a
// base URL.
func NewHTTPClient(cfg Config, logger *logger.Logger) (FileKeeperClient, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddr, err)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &httpClient{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpClient) SetSession(session models.Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.session = models.Session{
		Token:   strings.TrimSpace(session.Token),
		FileKey: strings.TrimSpace(session.FileKey),
	}
}

func (h *httpClient) Session() models.Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.session
}

func (h *httpClient) Version(ctx context.Context) (string, error) {
	var version struct {
		Version string `json:"version"`
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&version).
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return version.Version, nil
}

// ─────────────────────────────────────────────
// account
// ─────────────────────────────────────────────

func (h *httpClient) Register(ctx context.Context, login, password string) (models.Session, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.User{Login: login, Password: password}).
		Post("/api/user/register")
	if err != nil {
		return models.Session{}, fmt.Errorf("register request: %w", err)
	}

	return h.storeSession(resp)
}

func (h *httpClient) Login(ctx context.Context, login, password string) (models.Session, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.User{Login: login, Password: password}).
		Post("/api/user/login")
	if err != nil {
		return models.Session{}, fmt.Errorf("login request: %w", err)
	}

	return h.storeSession(resp)
}

func (h *httpClient) ChangePassword(ctx context.Context, oldPassword, newPassword string) (models.Session, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.Session{}, err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(models.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}).
		Patch("/api/user/password")
	if err != nil {
		return models.Session{}, fmt.Errorf("change password request: %w", err)
	}

	return h.storeSession(resp)
}

func (h *httpClient) DeleteAccount(ctx context.Context, password string) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(models.DeleteAccountRequest{Password: password}).
		Delete("/api/user")
	if err != nil {
		return fmt.Errorf("delete account request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetSession(models.Session{})
	return nil
}

func (h *httpClient) GetProfile(ctx context.Context) (models.User, error) {
	var user models.User
	err := h.sendJSON(ctx, http.MethodGet, "/api/user/me", nil, &user)
	return user, err
}

func (h *httpClient) UpdateProfile(ctx context.Context, request models.ProfileRequest) (models.User, error) {
	var user models.User
	err := h.sendJSON(ctx, http.MethodPatch, "/api/user/me", request, &user)
	return user, err
}

// VerifySession swaps the stored token for the renewed one. The server does
// not send the file key back, so the stored one is kept.
func (h *httpClient) VerifySession(ctx context.Context) (models.Session, error) {
	var session models.Session
	if err := h.sendJSON(ctx, http.MethodGet, "/api/user/verify", nil, &session); err != nil {
		return models.Session{}, err
	}
	if session.Token == "" {
		return models.Session{}, fmt.Errorf("verify session: %w", ErrUnexpectedResponse)
	}

	session.FileKey = h.Session().FileKey
	h.SetSession(session)
	return session, nil
}

// storeSession decodes a session response and keeps it for later calls.
func (h *httpClient) storeSession(resp *resty.Response) (models.Session, error) {
	if err := mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}

	var session models.Session
	if err := json.Unmarshal(resp.Body(), &session); err != nil {
		return models.Session{}, fmt.Errorf("decode session: %w", err)
	}
	if session.Token == "" {
		token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
		if err != nil {
			return models.Session{}, fmt.Errorf("parse bearer token: %w", err)
		}
		session.Token = token
	}

	h.SetSession(session)
	h.logger.Debug().Msg("session stored")
	return session, nil
}

// ─────────────────────────────────────────────
// folders
// ─────────────────────────────────────────────

func (h *httpClient) CreateFolder(ctx context.Context, request models.FolderRequest) (models.Folder, error) {
	var folder models.Folder
	err := h.sendJSON(ctx, http.MethodPost, "/api/folders", request, &folder)
	return folder, err
}

func (h *httpClient) GetFolder(ctx context.Context, folderID int64) (models.FolderContents, error) {
	var contents models.FolderContents
	err := h.sendJSON(ctx, http.MethodGet, folderPath(folderID, ""), nil, &contents)
	return contents, err
}

func (h *httpClient) ListRootFolders(ctx context.Context) ([]models.Folder, error) {
	var folders []models.Folder
	err := h.sendJSON(ctx, http.MethodGet, "/api/folders/root", nil, &folders)
	return folders, err
}

func (h *httpClient) UpdateFolder(ctx context.Context, folderID int64, request models.FolderRequest) (models.Folder, error) {
	var folder models.Folder
	err := h.sendJSON(ctx, http.MethodPatch, folderPath(folderID, ""), request, &folder)
	return folder, err
}

func (h *httpClient) MoveFolder(ctx context.Context, folderID int64, parent *int64) (models.Folder, error) {
	var folder models.Folder
	err := h.sendJSON(ctx, http.MethodPatch, folderPath(folderID, "/move"), models.MoveRequest{ParentFolder: parent}, &folder)
	return folder, err
}

func (h *httpClient) TrashFolder(ctx context.Context, folderID int64) (models.Folder, error) {
	var folder models.Folder
	err := h.sendJSON(ctx, http.MethodPatch, folderPath(folderID, "/trash"), nil, &folder)
	return folder, err
}

func (h *httpClient) DeleteFolder(ctx context.Context, folderID int64) error {
	return h.sendJSON(ctx, http.MethodDelete, folderPath(folderID, ""), nil, nil)
}

func (h *httpClient) Tree(ctx context.Context) (tree.Forest, error) {
	var forest tree.Forest
	err := h.sendJSON(ctx, http.MethodGet, "/api/files/tree", nil, &forest)
	return forest, err
}

// ─────────────────────────────────────────────
// files
// ─────────────────────────────────────────────

func (h *httpClient) UploadFiles(ctx context.Context, parent *int64, tags models.Tags, uploads ...models.FileUpload) ([]models.File, error) {
	req, err := h.contentRequest(ctx)
	if err != nil {
		return nil, err
	}

	fields := url.Values{}
	if parent != nil {
		fields.Set("parent_folder", strconv.FormatInt(*parent, 10))
	}
	for _, tag := range tags {
		fields.Add("tags", tag)
	}
	req.SetFormDataFromValues(fields)

	for _, upload := range uploads {
		contentType := upload.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		req.SetMultipartField("files", upload.Name, contentType, bytes.NewReader(upload.Data))
	}

	var files []models.File
	resp, err := req.SetResult(&files).Post("/api/files")
	if err != nil {
		return nil, fmt.Errorf("upload request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return files, nil
}

func (h *httpClient) DownloadFile(ctx context.Context, fileID int64) (models.FileDownload, error) {
	req, err := h.contentRequest(ctx)
	if err != nil {
		return models.FileDownload{}, err
	}

	resp, err := req.Get(filePath(fileID, ""))
	if err != nil {
		return models.FileDownload{}, fmt.Errorf("download request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.FileDownload{}, err
	}

	file := models.File{
		FileID:      fileID,
		ContentType: resp.Header().Get("Content-Type"),
		Size:        int64(len(resp.Body())),
	}
	if _, params, err := mime.ParseMediaType(resp.Header().Get("Content-Disposition")); err == nil {
		file.Name = params["filename"]
	}

	return models.FileDownload{File: file, Data: resp.Body()}, nil
}

func (h *httpClient) GetFileDetails(ctx context.Context, fileID int64) (models.File, error) {
	var file models.File
	err := h.sendJSON(ctx, http.MethodGet, filePath(fileID, "/details"), nil, &file)
	return file, err
}

func (h *httpClient) MoveFile(ctx context.Context, fileID int64, parent *int64) (models.File, error) {
	var file models.File
	err := h.sendJSON(ctx, http.MethodPatch, filePath(fileID, "/move"), models.MoveRequest{ParentFolder: parent}, &file)
	return file, err
}

func (h *httpClient) TrashFile(ctx context.Context, fileID int64) (models.File, error) {
	var file models.File
	err := h.sendJSON(ctx, http.MethodPatch, filePath(fileID, "/trash"), nil, &file)
	return file, err
}

func (h *httpClient) DeleteFile(ctx context.Context, fileID int64) error {
	return h.sendJSON(ctx, http.MethodDelete, filePath(fileID, ""), nil, nil)
}

// ─────────────────────────────────────────────
// reminders
// ─────────────────────────────────────────────

func (h *httpClient) CreateReminder(ctx context.Context, request models.ReminderRequest) (models.Reminder, error) {
	var reminder models.Reminder
	err := h.sendJSON(ctx, http.MethodPost, "/api/reminders", request, &reminder)
	return reminder, err
}

func (h *httpClient) GetReminder(ctx context.Context, reminderID int64) (models.Reminder, error) {
	var reminder models.Reminder
	err := h.sendJSON(ctx, http.MethodGet, reminderPath(reminderID, ""), nil, &reminder)
	return reminder, err
}

func (h *httpClient) ListReminders(ctx context.Context) ([]models.Reminder, error) {
	return h.listReminders(ctx, "/api/reminders")
}

func (h *httpClient) UpcomingReminders(ctx context.Context) ([]models.Reminder, error) {
	return h.listReminders(ctx, "/api/reminders/upcoming")
}

func (h *httpClient) PastReminders(ctx context.Context) ([]models.Reminder, error) {
	return h.listReminders(ctx, "/api/reminders/past")
}

func (h *httpClient) listReminders(ctx context.Context, path string) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := h.sendJSON(ctx, http.MethodGet, path, nil, &reminders)
	return reminders, err
}

func (h *httpClient) UpdateReminder(ctx context.Context, reminderID int64, request models.ReminderRequest) (models.Reminder, error) {
	var reminder models.Reminder
	err := h.sendJSON(ctx, http.MethodPatch, reminderPath(reminderID, ""), request, &reminder)
	return reminder, err
}

func (h *httpClient) ToggleReminder(ctx context.Context, reminderID int64) (models.Reminder, error) {
	var reminder models.Reminder
	err := h.sendJSON(ctx, http.MethodPatch, reminderPath(reminderID, "/toggle"), nil, &reminder)
	return reminder, err
}

func (h *httpClient) DeleteReminder(ctx context.Context, reminderID int64) error {
	return h.sendJSON(ctx, http.MethodDelete, reminderPath(reminderID, ""), nil, nil)
}

// ─────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────

// sendJSON runs an authorized request with an optional JSON body and
// decodes a 2xx response into result when it is not nil.
func (h *httpClient) sendJSON(ctx context.Context, method, path string, body, result any) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s request: %w", method, path, err)
	}
	return mapHTTPError(resp)
}

func (h *httpClient) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Session().Token
	if token == "" {
		return nil, ErrNoSession
	}
	return h.client.R().
		SetContext(ctx).
		SetAuthToken(token), nil
}

// contentRequest is an authorized request that also carries the file key.
func (h *httpClient) contentRequest(ctx context.Context) (*resty.Request, error) {
	session := h.Session()
	if session.FileKey == "" {
		return nil, ErrNoSession
	}
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}
	return req.SetHeader(fileKeyHeader, session.FileKey), nil
}

func folderPath(id int64, suffix string) string {
	return "/api/folders/" + strconv.FormatInt(id, 10) + suffix
}

func filePath(id int64, suffix string) string {
	return "/api/files/" + strconv.FormatInt(id, 10) + suffix
}

func reminderPath(id int64, suffix string) string {
	return "/api/reminders/" + strconv.FormatInt(id, 10) + suffix
}
