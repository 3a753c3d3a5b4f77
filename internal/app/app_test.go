package app

import (
	"bytes"
	"image"
	pngenc "image/png"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Error struct {
		Code   string `json:"code"`
		Domain string `json:"domain"`
	} `json:"error"`
}

type sessionBody struct {
	State   string `json:"state"`
	UserID  string `json:"user_id"`
	Profile *struct {
		Username string `json:"username"`
	} `json:"profile"`
}

// TestOnboardingFlow - новый пользователь без профиля попадает в онбординг,
// после него получает профиль с пустыми specs и portfolio.
func TestOnboardingFlow(t *testing.T) {
	ts := NewTestServer(t)
	token := ts.SignUp(t, "jdoe@example.com")

	t.Run("session without profile is onboarding", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/session", token, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		var s sessionBody
		decodeJSON(t, body, &s)
		assert.Equal(t, "onboarding", s.State)
		assert.NotEmpty(t, s.UserID)
		assert.Nil(t, s.Profile)
	})

	t.Run("shell is locked to onboarding", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/shell/view", token, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		var v struct {
			View   string `json:"view"`
			Locked bool   `json:"locked"`
		}
		decodeJSON(t, body, &v)
		assert.Equal(t, "onboarding", v.View)
		assert.True(t, v.Locked)

		res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/shell/view", token, map[string]string{"view": "projects"})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	})

	t.Run("profile fetch before onboarding is 404", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/profiles/me", token, nil)
		assert.Equal(t, http.StatusNotFound, res.StatusCode, body)
	})

	t.Run("onboarding creates profile", func(t *testing.T) {
		ts.Onboard(t, token, "John Doe", "jdoe")

		res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/profiles", token, map[string]string{
			"full_name": "John Doe",
			"username":  "jdoe",
		})
		assert.Equal(t, http.StatusConflict, res.StatusCode, "Second onboarding must conflict. Body: "+body)
	})

	t.Run("profile is returned with empty specs and portfolio", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/profiles/me", token, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		var p struct {
			Username         string `json:"username"`
			FullName         string `json:"full_name"`
			RoleType         string `json:"role_type"`
			OnboardingStatus string `json:"onboarding_status"`
			ProfileSpecs     struct {
				StageName string `json:"stage_name"`
			} `json:"profile_specs"`
			ProfilePortfolio struct {
				Bio         string            `json:"bio"`
				MediaAssets map[string]string `json:"media_assets"`
			} `json:"profile_portfolio"`
		}
		decodeJSON(t, body, &p)
		assert.Equal(t, "jdoe", p.Username)
		assert.Equal(t, "John Doe", p.FullName)
		assert.Equal(t, "talent", p.RoleType)
		assert.Equal(t, "details_added", p.OnboardingStatus)
		assert.Empty(t, p.ProfileSpecs.StageName)
		assert.Empty(t, p.ProfilePortfolio.Bio)
		assert.Empty(t, p.ProfilePortfolio.MediaAssets["headshot"])
	})

	t.Run("session is ready after onboarding", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/session", token, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		var s sessionBody
		decodeJSON(t, body, &s)
		assert.Equal(t, "ready", s.State)
		require.NotNil(t, s.Profile)
		assert.Equal(t, "jdoe", s.Profile.Username)
	})

	t.Run("public profile by username", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/profiles/by-username/jdoe", "", nil)
		assert.Equal(t, http.StatusOK, res.StatusCode, body)

		res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/profiles/by-username/nobody", "", nil)
		assert.Equal(t, http.StatusNotFound, res.StatusCode, body)
	})
}

func TestProfileSave(t *testing.T) {
	ts := NewTestServer(t)
	token := ts.SignUp(t, "save@example.com")
	ts.Onboard(t, token, "Asha Rao", "asha")

	// specs одним элементом списка, portfolio объектом
	res, body := ts.SendRequest(t, http.MethodPut, "/api/v1/profiles/me", token, map[string]interface{}{
		"profile_specs": []map[string]interface{}{{
			"stage_name":       "Asha",
			"city":             "Mumbai",
			"height_ft":        5,
			"height_in":        6,
			"languages_spoken": []string{"Hindi", "English"},
		}},
		"profile_portfolio": map[string]interface{}{
			"bio": "Theatre actor",
			"experience_json": []map[string]string{
				{"title": "Hamlet", "description": "Ophelia"},
			},
		},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var p struct {
		ProfileSpecs struct {
			StageName       string   `json:"stage_name"`
			City            string   `json:"city"`
			LanguagesSpoken []string `json:"languages_spoken"`
		} `json:"profile_specs"`
		ProfilePortfolio struct {
			Bio            string `json:"bio"`
			ExperienceJSON []struct {
				Title string `json:"title"`
			} `json:"experience_json"`
		} `json:"profile_portfolio"`
	}
	decodeJSON(t, body, &p)
	assert.Equal(t, "Asha", p.ProfileSpecs.StageName)
	assert.Equal(t, "Mumbai", p.ProfileSpecs.City)
	assert.Equal(t, []string{"Hindi", "English"}, p.ProfileSpecs.LanguagesSpoken)
	assert.Equal(t, "Theatre actor", p.ProfilePortfolio.Bio)
	require.Len(t, p.ProfilePortfolio.ExperienceJSON, 1)
	assert.Equal(t, "Hamlet", p.ProfilePortfolio.ExperienceJSON[0].Title)

	t.Run("invalid height is rejected", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPut, "/api/v1/profiles/me", token, map[string]interface{}{
			"profile_specs": map[string]interface{}{"height_in": 14},
		})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	})

	t.Run("scalar payload is rejected", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPut, "/api/v1/profiles/me", token, map[string]interface{}{
			"profile_specs": "nope",
		})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	})

	t.Run("dashboard reflects completeness", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/dashboard", token, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		var d struct {
			FirstName        string `json:"first_name"`
			ProfileComplete  bool   `json:"profile_complete"`
			NeedsAuditions   bool   `json:"needs_auditions"`
			ApplicationCount int64  `json:"application_count"`
			Challenge        struct {
				Title string `json:"title"`
			} `json:"weekly_challenge"`
		}
		decodeJSON(t, body, &d)
		assert.Equal(t, "Asha", d.FirstName)
		assert.True(t, d.ProfileComplete)
		assert.True(t, d.NeedsAuditions)
		assert.Zero(t, d.ApplicationCount)
		assert.NotEmpty(t, d.Challenge.Title)
	})
}

type projectBody struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Status           string `json:"status"`
	CreatorID        string `json:"creator_id"`
	IsDemo           bool   `json:"is_demo"`
	ApplicationCount int64  `json:"application_count"`
	Roles            []struct {
		ID       string `json:"id"`
		RoleName string `json:"role_name"`
	} `json:"project_roles"`
}

func createProject(t *testing.T, ts *TestServer, token, title string) projectBody {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/projects", token, map[string]interface{}{
		"title":            title,
		"description":      "Feature film",
		"casting_agency":   "Studio",
		"project_location": []string{"Mumbai"},
		"date_start":       "2026-11-01",
		"role": map[string]interface{}{
			"role_name": "Lead",
			"specs":     map[string]interface{}{"age_range": "20-30"},
		},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var p projectBody
	decodeJSON(t, body, &p)
	return p
}

func TestProjectsAndApplications(t *testing.T) {
	ts := NewTestServer(t)

	ownerToken := ts.SignUp(t, "owner@example.com")
	ts.Onboard(t, ownerToken, "Priya Owner", "priya")
	talentToken := ts.SignUp(t, "talent@example.com")
	ts.Onboard(t, talentToken, "Ravi Talent", "ravi")

	project := createProject(t, ts, ownerToken, "Monsoon Story")
	assert.Equal(t, "casting", project.Status)
	require.Len(t, project.Roles, 1)
	assert.Equal(t, "Lead", project.Roles[0].RoleName)

	t.Run("listing for others includes project and demos", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/projects?scope=all", talentToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		var list []projectBody
		decodeJSON(t, body, &list)
		require.Len(t, list, 3)
		assert.Equal(t, project.ID, list[0].ID)
		assert.True(t, list[1].IsDemo)
		assert.Equal(t, "mock1", list[1].ID)
		assert.Equal(t, "mock2", list[2].ID)
	})

	t.Run("own listing has no demos", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/projects?scope=mine", ownerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		var list []projectBody
		decodeJSON(t, body, &list)
		require.Len(t, list, 1)
		assert.Equal(t, project.ID, list[0].ID)
	})

	t.Run("only creator edits", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPut, "/api/v1/projects/"+project.ID, talentToken, map[string]interface{}{
			"title": "Hijacked",
			"role":  map[string]interface{}{"role_name": "Lead"},
		})
		assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

		res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/projects/mock1", ownerToken, map[string]interface{}{
			"title": "Nope",
			"role":  map[string]interface{}{"role_name": "Ghost"},
		})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	})

	t.Run("repeated application is accepted", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/projects/"+project.ID+"/applications", talentToken, map[string]string{
				"cover_note": "Pick me",
			})
			require.Equal(t, http.StatusCreated, res.StatusCode, body)
		}

		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/projects/"+project.ID+"/applications", ownerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		var apps []struct {
			RoleName      string `json:"role_name"`
			ApplicantName string `json:"applicant_name"`
			Status        string `json:"status"`
		}
		decodeJSON(t, body, &apps)
		require.Len(t, apps, 2)
		assert.Equal(t, "Lead", apps[0].RoleName)
		assert.Equal(t, "Ravi Talent", apps[0].ApplicantName)
		assert.Equal(t, "applied", apps[0].Status)

		res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/projects/"+project.ID+"/applications", talentToken, nil)
		assert.Equal(t, http.StatusForbidden, res.StatusCode, body)
	})

	t.Run("demo application is local to the session", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/projects/mock2/applications", talentToken, map[string]string{
			"cover_note": "I dance",
		})
		require.Equal(t, http.StatusCreated, res.StatusCode, body)

		res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/applications/me", talentToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		var apps []struct {
			ProjectID string `json:"project_id"`
			IsLocal   bool   `json:"is_local"`
		}
		decodeJSON(t, body, &apps)
		require.Len(t, apps, 3)
		assert.False(t, apps[0].IsLocal)
		assert.Equal(t, "mock2", apps[2].ProjectID)
		assert.True(t, apps[2].IsLocal)
	})

	t.Run("archive hides project and blocks applications", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/projects/"+project.ID+"/archive", talentToken, nil)
		assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

		res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/projects/"+project.ID+"/archive", ownerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/projects?scope=mine", ownerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		var list []projectBody
		decodeJSON(t, body, &list)
		assert.Empty(t, list)

		res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/projects/"+project.ID, ownerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		var archived projectBody
		decodeJSON(t, body, &archived)
		assert.Equal(t, "closed", archived.Status)

		res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/projects/"+project.ID+"/applications", talentToken, map[string]string{})
		assert.Equal(t, http.StatusConflict, res.StatusCode, body)
	})
}

func TestAuthSurface(t *testing.T) {
	ts := NewTestServer(t)

	t.Run("missing apikey is rejected", func(t *testing.T) {
		anon := *ts
		anon.AnonKey = ""
		res, body := anon.SendRequest(t, http.MethodGet, "/api/v1/session", "", nil)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, body)

		var e errorBody
		decodeJSON(t, body, &e)
		assert.Equal(t, "INVALID_API_KEY", e.Error.Code)
	})

	t.Run("no token is unauthenticated", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/session", "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		var s sessionBody
		decodeJSON(t, body, &s)
		assert.Equal(t, "unauthenticated", s.State)
	})

	t.Run("protected route without token", func(t *testing.T) {
		res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/profiles/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, body)
	})

	t.Run("sign in and sign out", func(t *testing.T) {
		ts.SignUp(t, "login@example.com")

		res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/signin", "", map[string]string{
			"email":    "login@example.com",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, body)

		res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/signin", "", map[string]string{
			"email":    "login@example.com",
			"password": "password123",
		})
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		var session struct {
			AccessToken string `json:"access_token"`
		}
		decodeJSON(t, body, &session)

		ts.Onboard(t, session.AccessToken, "Login User", "loginuser")

		res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/signout", session.AccessToken, nil)
		require.Equal(t, http.StatusNoContent, res.StatusCode, body)

		res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/profiles/me", session.AccessToken, nil)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, body)

		res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/session", session.AccessToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, body)
		var s sessionBody
		decodeJSON(t, body, &s)
		assert.Equal(t, "unauthenticated", s.State)
	})

	t.Run("duplicate email", func(t *testing.T) {
		ts.SignUp(t, "dup@example.com")
		res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
			"email":    "dup@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusConflict, res.StatusCode, body)
	})
}

func TestStaticContentAndCoach(t *testing.T) {
	ts := NewTestServer(t)
	token := ts.SignUp(t, "coach@example.com")

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/skilling/flashcards", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var cards []struct {
		Title string `json:"title"`
	}
	decodeJSON(t, body, &cards)
	assert.NotEmpty(t, cards)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/skilling/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/coach/report", token, map[string]string{"text": "Good posture."})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Equal(t, "Good posture.", body)
	assert.Contains(t, res.Header.Get("Content-Disposition"), "AI_Coach_Report_")
	assert.Contains(t, res.Header.Get("Content-Type"), "text/plain")

	res, body = ts.SendRequest(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
}

func TestMediaUploadAndCoach(t *testing.T) {
	ts := NewTestServer(t)
	token := ts.SignUp(t, "media@example.com")
	ts.Onboard(t, token, "Media Person", "mediaperson")

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	var png bytes.Buffer
	require.NoError(t, pngenc.Encode(&png, img))

	// готовое состояние сессии кешируется до загрузки
	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/session", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var session sessionBody
	decodeJSON(t, body, &session)
	require.Equal(t, "ready", session.State)

	res, body = ts.SendMultipart(t, "/api/v1/profiles/me/media/headshot", token, "file", "me.png", png.Bytes(), nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var upload struct {
		URL         string            `json:"url"`
		MediaAssets map[string]string `json:"media_assets"`
	}
	decodeJSON(t, body, &upload)
	assert.Contains(t, upload.URL, "headshot_")
	assert.Equal(t, upload.URL, upload.MediaAssets["headshot"])

	res, body = ts.SendMultipart(t, "/api/v1/profiles/me/media/elbow", token, "file", "me.png", png.Bytes(), nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)

	res, body = ts.SendMultipart(t, "/api/v1/profiles/me/media/headshot", token, "", "", nil, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)

	storedPath := upload.URL[:strings.Index(upload.URL, "?")]
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/profiles/me", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, storedPath)

	assert.Eventually(t, func() bool {
		_, body := ts.SendRequest(t, http.MethodGet, "/api/v1/session", token, nil)
		return strings.Contains(body, storedPath)
	}, time.Second, 10*time.Millisecond, "Сессия отдает профиль с новым слотом")

	t.Run("upload before onboarding", func(t *testing.T) {
		fresh := ts.SignUp(t, "nomedia@example.com")
		res, body := ts.SendMultipart(t, "/api/v1/profiles/me/media/headshot", fresh, "file", "me.png", png.Bytes(), nil)
		assert.Equal(t, http.StatusNotFound, res.StatusCode, body)
	})

	t.Run("coach requires a video", func(t *testing.T) {
		res, body := ts.SendMultipart(t, "/api/v1/coach/analyze", token, "", "", nil, map[string]string{"prompt": "Rate me"})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	})

	t.Run("coach answers with template", func(t *testing.T) {
		res, body := ts.SendMultipart(t, "/api/v1/coach/analyze", token, "video", "take1.mp4", []byte("not really a video"), map[string]string{"prompt": "Rate me"})
		require.Equal(t, http.StatusOK, res.StatusCode, body)

		var out struct {
			Result string `json:"result"`
			Prompt string `json:"prompt"`
		}
		decodeJSON(t, body, &out)
		assert.Equal(t, "Rate me", out.Prompt)
		assert.Contains(t, out.Result, `"Rate me"`)
	})
}
