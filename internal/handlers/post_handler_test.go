package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/openhaven/haven-backend/internal/models"
)

func TestGetPostRejectsMalformedIDBeforeStorage(t *testing.T) {
	e := newTestEcho()
	repo := newFakePostRepository()
	h := NewPostHandler(repo)

	c, _ := newTestContext(e, http.MethodGet, "/posts/not-a-uuid", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.GetPost(c)
	assertHTTPError(t, err, http.StatusBadRequest, "not-a-uuid")

	if repo.calls != 0 {
		t.Fatalf("expected no storage access, got %d calls", repo.calls)
	}
}

func TestGetPostNotFound(t *testing.T) {
	e := newTestEcho()
	h := NewPostHandler(newFakePostRepository())

	c, _ := newTestContext(e, http.MethodGet, "/posts/x", "")
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.GetPost(c)
	assertHTTPError(t, err, http.StatusNotFound, "")
}

func TestCreatePostStampsOwnerFromIdentity(t *testing.T) {
	e := newTestEcho()
	repo := newFakePostRepository()
	h := NewPostHandler(repo)

	c, rec := newTestContext(e, http.MethodPost, "/posts", `{"title":"T","content":"C","user_id":"attacker"}`)
	setIdentity(c, "u1")

	if err := h.CreatePost(c); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var post models.Post
	if err := json.Unmarshal(rec.Body.Bytes(), &post); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if post.UserID != "u1" {
		t.Errorf("expected owner u1 from identity, got %q", post.UserID)
	}
	if post.Status != models.PostStatusActive {
		t.Errorf("expected status active, got %q", post.Status)
	}
	if post.IsAnonymous {
		t.Error("expected is_anonymous to default to false")
	}
	if post.ID == "" {
		t.Error("expected a server-assigned id")
	}
}

func TestCreatePostRequiresTitleAndContent(t *testing.T) {
	e := newTestEcho()
	h := NewPostHandler(newFakePostRepository())

	c, _ := newTestContext(e, http.MethodPost, "/posts", `{"title":"T"}`)
	setIdentity(c, "u1")

	err := h.CreatePost(c)
	assertHTTPError(t, err, http.StatusBadRequest, "")
}

func TestCreatePostClearsDisplayNameWhenNotAnonymous(t *testing.T) {
	e := newTestEcho()
	h := NewPostHandler(newFakePostRepository())

	c, rec := newTestContext(e, http.MethodPost, "/posts", `{"title":"T","content":"C","anonymous_username":"ghost"}`)
	setIdentity(c, "u1")

	if err := h.CreatePost(c); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	var post models.Post
	if err := json.Unmarshal(rec.Body.Bytes(), &post); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if post.AnonymousUsername != "" {
		t.Errorf("expected empty display name on a non-anonymous post, got %q", post.AnonymousUsername)
	}
}

func TestUpdatePostForbiddenForNonOwner(t *testing.T) {
	e := newTestEcho()
	repo := newFakePostRepository()
	h := NewPostHandler(repo)

	postID := uuid.NewString()
	repo.posts[postID] = &models.Post{ID: postID, Title: "T", Content: "C", UserID: "owner", Status: models.PostStatusActive}

	c, _ := newTestContext(e, http.MethodPut, "/posts/x", `{"title":"New","content":"New"}`)
	c.SetParamNames("id")
	c.SetParamValues(postID)
	setIdentity(c, "intruder")

	err := h.UpdatePost(c)
	assertHTTPError(t, err, http.StatusForbidden, "")

	if repo.updateDone {
		t.Error("expected no update call for a forbidden request")
	}
	if repo.posts[postID].Title != "T" {
		t.Errorf("expected post left unmodified, title is %q", repo.posts[postID].Title)
	}
}

func TestUpdatePostAcceptsLegacyOwnerColumn(t *testing.T) {
	e := newTestEcho()
	repo := newFakePostRepository()
	h := NewPostHandler(repo)

	postID := uuid.NewString()
	legacyOwner := "u2"
	repo.posts[postID] = &models.Post{ID: postID, Title: "T", Content: "C", UserID: "someone-else", AuthorID: &legacyOwner, Status: models.PostStatusActive}

	c, rec := newTestContext(e, http.MethodPut, "/posts/x", `{"title":"New","content":"New"}`)
	c.SetParamNames("id")
	c.SetParamValues(postID)
	setIdentity(c, "u2")

	if err := h.UpdatePost(c); err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if repo.posts[postID].Title != "New" {
		t.Errorf("expected title updated, got %q", repo.posts[postID].Title)
	}
}

func TestDeletePostByOwner(t *testing.T) {
	e := newTestEcho()
	repo := newFakePostRepository()
	h := NewPostHandler(repo)

	postID := uuid.NewString()
	repo.posts[postID] = &models.Post{ID: postID, Title: "T", Content: "C", UserID: "u1", Status: models.PostStatusActive}

	c, rec := newTestContext(e, http.MethodDelete, "/posts/x", "")
	c.SetParamNames("id")
	c.SetParamValues(postID)
	setIdentity(c, "u1")

	if err := h.DeletePost(c); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}

	var resp map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp["success"] {
		t.Error("expected success response")
	}
	if _, ok := repo.posts[postID]; ok {
		t.Error("expected post removed from storage")
	}
}

func TestListPostsRejectsUnknownStatus(t *testing.T) {
	e := newTestEcho()
	h := NewPostHandler(newFakePostRepository())

	c, _ := newTestContext(e, http.MethodGet, "/posts?status=hidden", "")
	err := h.ListPosts(c)
	assertHTTPError(t, err, http.StatusBadRequest, "hidden")
}
