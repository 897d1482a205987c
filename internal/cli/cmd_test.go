package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/mindwell/internal/config"
	"github.com/alexanderramin/mindwell/internal/repository"
	"github.com/alexanderramin/mindwell/internal/scoring"
	"github.com/alexanderramin/mindwell/internal/service"
	"github.com/alexanderramin/mindwell/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const (
	gad7File = "../importer/testdata/gad7.json"
	phq9File = "../importer/testdata/phq9.yaml"
)

const gapTemplate = `short_id: BAD01
title: Broken bands
questions:
  - text: How often?
    type: scale
    options:
      - {label: Never, value: 0}
      - {label: Always, value: 3}
scoring:
  severity_levels:
    - {name: Low, range: {min: 0, max: 1}}
    - {name: High, range: {min: 3, max: 3}}
`

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	templates := repository.NewSQLiteTemplateRepo(database)
	results := repository.NewSQLiteResultRepo(database)
	uow := testutil.NewTestUoW(database)

	return &App{
		Templates:   service.NewTemplateService(templates, uow),
		Assessments: service.NewAssessmentService(templates, results, uow),
		Config:      config.DefaultConfig(),
		Now:         func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) },
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// --- template validate ---

func TestTemplateValidate_ReportsEachFile(t *testing.T) {
	app := testApp(t)
	bad := writeTemp(t, "bad.yaml", gapTemplate)

	out, err := executeCmd(t, app, "template", "validate", gad7File, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files invalid")
	assert.Contains(t, out, "GAD07")
	assert.Contains(t, out, "Gap between severity levels")
	assert.Contains(t, out, `"High" should start at 2`)
}

func TestTemplateValidate_AllValid(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "template", "validate", gad7File, phq9File)
	require.NoError(t, err)
	assert.Contains(t, out, "GAD07")
	assert.Contains(t, out, "PHQ09")
}

func TestTemplateValidate_WatchNeedsOneFile(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "template", "validate", "--watch", gad7File, phq9File)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one file")
}

func TestValidateFiles_KeepsArgumentOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	bad := writeTemp(t, "bad.yaml", gapTemplate)
	paths := []string{bad, gad7File, "does-not-exist.yaml", phq9File}

	reports, err := validateFiles(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, reports, 4)
	for i, r := range reports {
		assert.Equal(t, paths[i], r.Path)
	}
	assert.False(t, reports[0].ok())
	assert.True(t, reports[1].ok())
	assert.False(t, reports[2].ok())
	assert.True(t, reports[3].ok())
}

func TestValidateFiles_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := validateFiles(ctx, []string{gad7File})
	assert.ErrorIs(t, err, context.Canceled)
}

// --- template import / list / show / publish / archive / delete ---

func TestTemplateImport_ListAndShow(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "template", "import", gad7File)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported")
	assert.Contains(t, out, "7 questions, 4 levels")

	out, err = executeCmd(t, app, "template", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "GAD07")
	assert.Contains(t, out, "PUBLISHED")

	out, err = executeCmd(t, app, "template", "show", "gad07")
	require.NoError(t, err)
	assert.Contains(t, out, "Generalized Anxiety Disorder scale")
	assert.Contains(t, out, "SEVERITY LEVELS")
	assert.Contains(t, out, "Refer to a counselor")
	assert.Contains(t, out, "levels cover every score")
}

func TestTemplateImport_InvalidFilePrintsErrors(t *testing.T) {
	app := testApp(t)
	bad := writeTemp(t, "bad.yaml", gapTemplate)

	out, err := executeCmd(t, app, "template", "import", bad)
	require.Error(t, err)
	var verr *service.ImportValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, out, "scoring.severity_levels")

	out, err = executeCmd(t, app, "template", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No templates found")
}

func TestTemplatePublish(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "template", "import", phq9File)
	require.NoError(t, err)

	out, err := executeCmd(t, app, "template", "publish", "phq09")
	require.NoError(t, err)
	assert.Contains(t, out, "Published")

	tmpl, err := app.Templates.Get(context.Background(), "PHQ09")
	require.NoError(t, err)
	assert.Equal(t, "published", string(tmpl.Status))
}

func TestTemplateArchive_HidesAndRefusesSubmissions(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "template", "import", gad7File)
	require.NoError(t, err)

	_, err = executeCmd(t, app, "template", "archive", "GAD07")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "template", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "GAD07")

	out, err = executeCmd(t, app, "template", "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "ARCHIVED")

	_, err = executeCmd(t, app, "assess", "take", "GAD07",
		"--answer", "1=0", "--answer", "2=0", "--answer", "3=0", "--answer", "4=0",
		"--answer", "5=0", "--answer", "6=0", "--answer", "7=0")
	assert.ErrorIs(t, err, service.ErrTemplateArchived)
}

func TestTemplateDelete_NeedsForceWhenResultsExist(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "template", "import", gad7File)
	require.NoError(t, err)
	takeGAD7(t, app, "sam", 0, 0, 0, 0, 0, 0, 0)

	_, err = executeCmd(t, app, "template", "delete", "GAD07")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	out, err := executeCmd(t, app, "template", "delete", "GAD07", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted")

	_, err = executeCmd(t, app, "template", "show", "GAD07")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTemplateLevels_RequiresTerminal(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return false }

	_, err := executeCmd(t, app, "template", "levels", "GAD07")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

// --- assess ---

func takeGAD7(t *testing.T, app *App, respondent string, values ...int) string {
	t.Helper()
	args := []string{"assess", "take", "GAD07", "--respondent", respondent}
	for i, v := range values {
		args = append(args, "--answer", fmt.Sprintf("%d=%d", i+1, v))
	}
	out, err := executeCmd(t, app, args...)
	require.NoError(t, err)
	return out
}

func TestAssessTake_WithAnswerFlags(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "template", "import", gad7File)
	require.NoError(t, err)

	out := takeGAD7(t, app, "sam", 3, 3, 3, 3, 0, 0, 0)
	assert.Contains(t, out, "12/21")
	assert.Contains(t, out, "Moderate")
	assert.Contains(t, out, "Nearly every day")

	results, err := app.Assessments.ListResults(context.Background(), "GAD07")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "sam", results[0].Respondent)
	assert.Equal(t, 12, results[0].TotalScore)

	out, err = executeCmd(t, app, "assess", "results", "GAD07")
	require.NoError(t, err)
	assert.Contains(t, out, results[0].ReferenceCode)
	assert.Contains(t, out, "12/21")

	out, err = executeCmd(t, app, "assess", "show", results[0].ReferenceCode)
	require.NoError(t, err)
	assert.Contains(t, out, "Respondent: sam")
	assert.Contains(t, out, "Moderate")
}

func TestAssessTake_SevereIncludesRecommendations(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "template", "import", gad7File)
	require.NoError(t, err)

	out := takeGAD7(t, app, "", 3, 3, 3, 3, 3, 3, 3)
	assert.Contains(t, out, "21/21")
	assert.Contains(t, out, "Severe")
	assert.Contains(t, out, "Refer to a counselor")
}

func TestAssessTake_RejectsBadAnswers(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "template", "import", gad7File)
	require.NoError(t, err)

	t.Run("question out of range", func(t *testing.T) {
		_, err := executeCmd(t, app, "assess", "take", "GAD07", "--answer", "9=1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "template has 7 questions")
	})

	t.Run("malformed flag", func(t *testing.T) {
		_, err := executeCmd(t, app, "assess", "take", "GAD07", "--answer", "one")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "QUESTION=VALUE")
	})

	t.Run("value not an option", func(t *testing.T) {
		_, err := executeCmd(t, app, "assess", "take", "GAD07",
			"--answer", "1=7", "--answer", "2=0", "--answer", "3=0", "--answer", "4=0",
			"--answer", "5=0", "--answer", "6=0", "--answer", "7=0")
		assert.ErrorIs(t, err, scoring.ErrUnknownOption)
	})

	t.Run("required question missing", func(t *testing.T) {
		_, err := executeCmd(t, app, "assess", "take", "GAD07", "--answer", "1=1")
		assert.ErrorIs(t, err, scoring.ErrUnansweredQuestion)
	})
}

func TestAssessShow_UnknownCode(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "assess", "show", "R-NOPE")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// --- color ---

func TestColorRGBA(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "color", "rgba", "#fb4934", "--alpha", "0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "rgba(251, 73, 52, 0.5)")

	out, err = executeCmd(t, app, "color", "rgba", "#abc")
	require.NoError(t, err)
	assert.Contains(t, out, "rgba(170, 187, 204, 1)")

	_, err = executeCmd(t, app, "color", "rgba", "#zzzzzz")
	assert.ErrorIs(t, err, scoring.ErrInvalidColor)
}

// --- answer flag parsing ---

func TestAnswerFlag(t *testing.T) {
	f := answerFlag{}
	require.NoError(t, f.Set("2=1"))
	require.NoError(t, f.Set(" 1 = 3 "))
	require.NoError(t, f.Set("10=a, b"))
	assert.Equal(t, "1=3,2=1,10=a, b", f.String())

	assert.Error(t, f.Set("0=1"))
	assert.Error(t, f.Set("x=1"))
	assert.Error(t, f.Set("1"))
}
