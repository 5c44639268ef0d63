package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	handlers "github.com/statops/tabstat/cmd/tabstatd/handlers"
	httptestutil "github.com/statops/tabstat/internal/testutils/http"
	bindprojects "github.com/statops/tabstat/pkg/api-types-binding/projects"
	apiprojects "github.com/statops/tabstat/pkg/api/types/projects"
	"github.com/statops/tabstat/pkg/domain"
	"github.com/statops/tabstat/pkg/domain/auth"
	mockdatasetdb "github.com/statops/tabstat/pkg/domain/dataset/db/mock"
	kerr "github.com/statops/tabstat/pkg/domain/errors"
	mockprojectdb "github.com/statops/tabstat/pkg/domain/project/db/mock"
	"github.com/statops/tabstat/pkg/utils/cmp"
)

func poohClaims() *auth.Claims {
	return &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-pooh"},
		UserName:         "pooh",
		Email:            "pooh@example.com",
	}
}

func TestCreateProjectHandler(t *testing.T) {

	t.Run("it registers a new project owned by the caller", func(t *testing.T) {
		mockProject := mockprojectdb.NewProjectInterface()
		mockProject.Impl.Register = func(context.Context, domain.Project) error {
			return nil
		}

		e := echo.New()
		c, respRec := httptestutil.Post(
			e, "/api/projects",
			strings.NewReader(`{"name": "winnie", "description": "honey studies"}`),
			httptestutil.ContentType("application/json"),
		)
		handlers.SetClaims(c, poohClaims())

		testee := handlers.CreateProjectHandler(mockProject)
		if err := testee(c); err != nil {
			t.Fatalf("response is not illegal. error = %v", err)
		}

		if mockProject.Calls.Register.Times() != 1 {
			t.Fatalf("unmatch: Register is called %d times", mockProject.Calls.Register.Times())
		}
		registered := mockProject.Calls.Register[0]
		if registered.ProjectId == "" {
			t.Errorf("the new project has no id")
		}
		if registered.Name != "winnie" || registered.Description != "honey studies" {
			t.Errorf("unmatch: registered project: %+v", registered)
		}
		if registered.OwnerId != "user-pooh" {
			t.Errorf("unmatch: owner: %s != user-pooh", registered.OwnerId)
		}
		if registered.CreatedAt.IsZero() {
			t.Errorf("the new project has no timestamp")
		}

		if respRec.Result().StatusCode != http.StatusOK {
			t.Fatalf("status code %d != %d", respRec.Result().StatusCode, http.StatusOK)
		}

		actual := apiprojects.Detail{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatalf("response is not json. error = %v", err)
		}
		if expected := bindprojects.ComposeDetail(registered); !actual.Equal(expected) {
			t.Errorf(
				"unmatch: payload: (actual, expected) = \n(%+v, \n%+v)",
				actual, expected,
			)
		}
	})

	t.Run("it responses error ", func(t *testing.T) {
		type when struct {
			body          string
			claims        *auth.Claims
			errorRegister error
		}

		for name, testcase := range map[string]struct {
			when when
			then int
		}{
			"Bad Request: when the name is left out": {
				when: when{body: `{"description": "no name"}`, claims: poohClaims()},
				then: http.StatusBadRequest,
			},
			"Bad Request: when the body is not json": {
				when: when{body: `name=winnie`, claims: poohClaims()},
				then: http.StatusBadRequest,
			},
			"Unauthorized: when no claims are set": {
				when: when{body: `{"name": "winnie"}`},
				then: http.StatusUnauthorized,
			},
			"Internal Server Error: when the store fails": {
				when: when{
					body:          `{"name": "winnie"}`,
					claims:        poohClaims(),
					errorRegister: errors.New("fake error"),
				},
				then: http.StatusInternalServerError,
			},
		} {
			t.Run(name, func(t *testing.T) {
				mockProject := mockprojectdb.NewProjectInterface()
				mockProject.Impl.Register = func(context.Context, domain.Project) error {
					return testcase.when.errorRegister
				}

				e := echo.New()
				c, _ := httptestutil.Post(
					e, "/api/projects", strings.NewReader(testcase.when.body),
					httptestutil.ContentType("application/json"),
				)
				if testcase.when.claims != nil {
					handlers.SetClaims(c, testcase.when.claims)
				}

				testee := handlers.CreateProjectHandler(mockProject)

				err := testee(c)
				if httperr := new(echo.HTTPError); !errors.As(err, &httperr) {
					t.Fatalf("unmatch: error type: %+v is not echo.HTTPError", err)
				} else if httperr.Code != testcase.then {
					t.Fatalf("unmatch: status code: %d != %d", httperr.Code, testcase.then)
				}
			})
		}
	})
}

func TestFindProjectHandler(t *testing.T) {

	t.Run("it returns OK with projects, newest first", func(t *testing.T) {
		projects := map[string]domain.Project{
			"project-1": {
				ProjectId: "project-1", Name: "alpha", OwnerId: "user-pooh",
				CreatedAt: time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC),
			},
			"project-2": {
				ProjectId: "project-2", Name: "beta", Description: "b", OwnerId: "user-piglet",
				CreatedAt: time.Date(2025, 4, 2, 12, 0, 0, 0, time.UTC),
			},
		}

		mockProject := mockprojectdb.NewProjectInterface()
		mockProject.Impl.Find = func(context.Context) ([]string, error) {
			return []string{"project-2", "project-1"}, nil
		}
		mockProject.Impl.Get = func(_ context.Context, ids []string) (map[string]domain.Project, error) {
			return projects, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/projects")

		testee := handlers.FindProjectHandler(mockProject)
		if err := testee(c); err != nil {
			t.Fatalf("response is not illegal. error = %v", err)
		}

		if respRec.Result().StatusCode != http.StatusOK {
			t.Fatalf("status code %d != %d", respRec.Result().StatusCode, http.StatusOK)
		}

		actual := []apiprojects.Detail{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatalf("response is not json. error = %v", err)
		}

		expected := []apiprojects.Detail{
			bindprojects.ComposeDetail(projects["project-2"]),
			bindprojects.ComposeDetail(projects["project-1"]),
		}
		if !cmp.SliceEqWith(actual, expected, apiprojects.Detail.Equal) {
			t.Errorf(
				"unmatch: payload: (actual, expected) = \n(%+v, \n%+v)",
				actual, expected,
			)
		}
	})

	t.Run("it returns OK with an empty list when no projects exist", func(t *testing.T) {
		mockProject := mockprojectdb.NewProjectInterface()
		mockProject.Impl.Find = func(context.Context) ([]string, error) {
			return []string{}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/projects")

		testee := handlers.FindProjectHandler(mockProject)
		if err := testee(c); err != nil {
			t.Fatalf("response is not illegal. error = %v", err)
		}

		if body := strings.TrimSpace(respRec.Body.String()); body != "[]" {
			t.Errorf("unmatch: body: %s != []", body)
		}
	})

	t.Run("it responses Internal Server Error when the store fails", func(t *testing.T) {
		mockProject := mockprojectdb.NewProjectInterface()
		mockProject.Impl.Find = func(context.Context) ([]string, error) {
			return nil, errors.New("fake error")
		}

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/projects")

		testee := handlers.FindProjectHandler(mockProject)

		err := testee(c)
		if httperr := new(echo.HTTPError); !errors.As(err, &httperr) {
			t.Fatalf("unmatch: error type: %+v is not echo.HTTPError", err)
		} else if httperr.Code != http.StatusInternalServerError {
			t.Fatalf("unmatch: status code: %d != %d", httperr.Code, http.StatusInternalServerError)
		}
	})
}

func TestGetProjectHandler(t *testing.T) {

	t.Run("it responses OK with the project in json", func(t *testing.T) {
		project := domain.Project{
			ProjectId: "project-1", Name: "alpha", Description: "a", OwnerId: "user-pooh",
			CreatedAt: time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC),
		}

		mockProject := mockprojectdb.NewProjectInterface()
		mockProject.Impl.Get = func(context.Context, []string) (map[string]domain.Project, error) {
			return map[string]domain.Project{"project-1": project}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Get(e, "/api/projects/project-1")
		c.SetPath("/projects/:projectId")
		c.SetParamNames("projectId")
		c.SetParamValues("project-1")

		testee := handlers.GetProjectHandler(mockProject)
		if err := testee(c); err != nil {
			t.Fatalf("response is not illegal. error = %v", err)
		}

		if mockProject.Calls.Get.Times() != 1 ||
			!cmp.SliceEq(mockProject.Calls.Get[0].ProjectIds, []string{"project-1"}) {
			t.Errorf("unmatch: params for ProjectInterface.Get: %+v", mockProject.Calls.Get)
		}

		actual := apiprojects.Detail{}
		if err := json.Unmarshal(respRec.Body.Bytes(), &actual); err != nil {
			t.Fatalf("response is not json. error = %v", err)
		}
		if expected := bindprojects.ComposeDetail(project); !actual.Equal(expected) {
			t.Errorf(
				"unmatch: payload: (actual, expected) = \n(%+v, \n%+v)",
				actual, expected,
			)
		}
	})

	t.Run("it responses error ", func(t *testing.T) {
		for name, testcase := range map[string]struct {
			returnGet map[string]domain.Project
			errorGet  error
			then      int
		}{
			"Not Found: when no such project exists": {
				returnGet: map[string]domain.Project{},
				then:      http.StatusNotFound,
			},
			"Internal Server Error: when the store fails": {
				errorGet: errors.New("fake error"),
				then:     http.StatusInternalServerError,
			},
		} {
			t.Run(name, func(t *testing.T) {
				mockProject := mockprojectdb.NewProjectInterface()
				mockProject.Impl.Get = func(context.Context, []string) (map[string]domain.Project, error) {
					return testcase.returnGet, testcase.errorGet
				}

				e := echo.New()
				c, _ := httptestutil.Get(e, "/api/projects/project-1")
				c.SetPath("/projects/:projectId")
				c.SetParamNames("projectId")
				c.SetParamValues("project-1")

				testee := handlers.GetProjectHandler(mockProject)

				err := testee(c)
				if httperr := new(echo.HTTPError); !errors.As(err, &httperr) {
					t.Fatalf("unmatch: error type: %+v is not echo.HTTPError", err)
				} else if httperr.Code != testcase.then {
					t.Fatalf("unmatch: status code: %d != %d", httperr.Code, testcase.then)
				}
			})
		}
	})
}

func TestDeleteProjectHandler(t *testing.T) {

	t.Run("it deletes a project holding no datasets", func(t *testing.T) {
		mockProject := mockprojectdb.NewProjectInterface()
		mockProject.Impl.Delete = func(context.Context, string) error {
			return nil
		}
		mockDataset := mockdatasetdb.NewDatasetInterface()
		mockDataset.Impl.Find = func(context.Context, string) ([]string, error) {
			return []string{}, nil
		}

		e := echo.New()
		c, respRec := httptestutil.Delete(e, "/api/projects/project-1")
		c.SetPath("/projects/:projectId")
		c.SetParamNames("projectId")
		c.SetParamValues("project-1")

		testee := handlers.DeleteProjectHandler(mockProject, mockDataset)
		if err := testee(c); err != nil {
			t.Fatalf("response is not illegal. error = %v", err)
		}

		if respRec.Result().StatusCode != http.StatusNoContent {
			t.Errorf("status code %d != %d", respRec.Result().StatusCode, http.StatusNoContent)
		}
		if mockDataset.Calls.Find.Times() != 1 ||
			mockDataset.Calls.Find[0].ProjectId != "project-1" {
			t.Errorf("unmatch: params for DatasetInterface.Find: %+v", mockDataset.Calls.Find)
		}
		if mockProject.Calls.Delete.Times() != 1 ||
			mockProject.Calls.Delete[0].ProjectId != "project-1" {
			t.Errorf("unmatch: params for ProjectInterface.Delete: %+v", mockProject.Calls.Delete)
		}
	})

	t.Run("it refuses to delete a project still holding datasets", func(t *testing.T) {
		mockProject := mockprojectdb.NewProjectInterface()
		mockDataset := mockdatasetdb.NewDatasetInterface()
		mockDataset.Impl.Find = func(context.Context, string) ([]string, error) {
			return []string{"dataset-1"}, nil
		}

		e := echo.New()
		c, _ := httptestutil.Delete(e, "/api/projects/project-1")
		c.SetPath("/projects/:projectId")
		c.SetParamNames("projectId")
		c.SetParamValues("project-1")

		testee := handlers.DeleteProjectHandler(mockProject, mockDataset)

		err := testee(c)
		if httperr := new(echo.HTTPError); !errors.As(err, &httperr) {
			t.Fatalf("unmatch: error type: %+v is not echo.HTTPError", err)
		} else if httperr.Code != http.StatusConflict {
			t.Fatalf("unmatch: status code: %d != %d", httperr.Code, http.StatusConflict)
		}

		if mockProject.Calls.Delete.Times() != 0 {
			t.Errorf("the project should not be deleted: %+v", mockProject.Calls.Delete)
		}
	})

	t.Run("it responses Not Found for a project which does not exist", func(t *testing.T) {
		mockProject := mockprojectdb.NewProjectInterface()
		mockProject.Impl.Delete = func(context.Context, string) error {
			return kerr.ErrMissing
		}
		mockDataset := mockdatasetdb.NewDatasetInterface()
		mockDataset.Impl.Find = func(context.Context, string) ([]string, error) {
			return []string{}, nil
		}

		e := echo.New()
		c, _ := httptestutil.Delete(e, "/api/projects/no-such-project")
		c.SetPath("/projects/:projectId")
		c.SetParamNames("projectId")
		c.SetParamValues("no-such-project")

		testee := handlers.DeleteProjectHandler(mockProject, mockDataset)

		err := testee(c)
		if httperr := new(echo.HTTPError); !errors.As(err, &httperr) {
			t.Fatalf("unmatch: error type: %+v is not echo.HTTPError", err)
		} else if httperr.Code != http.StatusNotFound {
			t.Fatalf("unmatch: status code: %d != %d", httperr.Code, http.StatusNotFound)
		}
	})
}
