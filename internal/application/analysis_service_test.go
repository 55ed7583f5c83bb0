package application_test

import (
	"errors"
	"testing"
	"time"

	"github.com/abdidvp/forcekraft/internal/adapters/outbound/config"
	"github.com/abdidvp/forcekraft/internal/adapters/outbound/metadata"
	"github.com/abdidvp/forcekraft/internal/application"
	"github.com/abdidvp/forcekraft/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureDir = "../../testdata/org"

type fakeConfig struct {
	cfg domain.ProjectConfig
	err error
}

func (f fakeConfig) Load(string) (domain.ProjectConfig, error) { return f.cfg, f.err }

type fakeMetadata struct {
	fields   []domain.FieldRecord
	rules    []domain.ValidationRuleRecord
	triggers []domain.TriggerRecord
	flows    []domain.FlowRecord
	err      error
	calls    []string
}

func (f *fakeMetadata) LoadFields(_ string, _ []string) ([]domain.FieldRecord, error) {
	f.calls = append(f.calls, domain.DomainNaming)
	return f.fields, f.err
}

func (f *fakeMetadata) LoadValidationRules(_ string, _ []string) ([]domain.ValidationRuleRecord, error) {
	f.calls = append(f.calls, domain.DomainValidation)
	return f.rules, f.err
}

func (f *fakeMetadata) LoadTriggers(_ string, _ []string) ([]domain.TriggerRecord, error) {
	f.calls = append(f.calls, domain.DomainTriggers)
	return f.triggers, f.err
}

func (f *fakeMetadata) LoadFlows(_ string, _ []string) ([]domain.FlowRecord, error) {
	f.calls = append(f.calls, domain.DomainFlows)
	return f.flows, f.err
}

type fakeCommits struct {
	hash    string
	err     error
	noRepo  bool
	lookups *int
}

func (f fakeCommits) IsGitRepo(string) bool { return !f.noRepo }

func (f fakeCommits) CommitHash(string) (string, error) {
	if f.lookups != nil {
		*f.lookups++
	}
	return f.hash, f.err
}

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newService(cfg domain.ProjectConfig, md *fakeMetadata, commits domain.CommitReader) *application.AnalysisService {
	return application.NewAnalysisService(fakeConfig{cfg: cfg}, md, commits,
		application.WithClock(func() time.Time { return fixedTime }))
}

func sampleMetadata() *fakeMetadata {
	return &fakeMetadata{
		fields: []domain.FieldRecord{
			{APIName: "nc_Loan_Score__c"},
			{APIName: "customField__c"},
			{APIName: "Legacy_Field__c"},
		},
		rules: []domain.ValidationRuleRecord{
			{APIName: "VR_Profile", ErrorConditionFormula: "$Profile.Name != 'System Administrator'"},
		},
		triggers: []domain.TriggerRecord{
			{Name: "LoanTrigger", Content: "if (FeatureManagement.checkPermission('Bypass_Loan_Trigger')) return;"},
		},
	}
}

func TestAnalysisService_AnalyzeProject(t *testing.T) {
	md := sampleMetadata()
	svc := newService(domain.DefaultConfig(), md, fakeCommits{hash: "abc1234"})

	r, err := svc.AnalyzeProject("/project")
	require.NoError(t, err)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, fixedTime, r.Timestamp)
	assert.Equal(t, "abc1234", r.CommitHash)
	assert.Equal(t, domain.DefaultObject, r.Object)
	require.NotNil(t, r.DetailedFindings.NamingConventions)
	require.NotNil(t, r.DetailedFindings.ValidationRules)
	require.NotNil(t, r.DetailedFindings.Triggers)
	assert.Nil(t, r.DetailedFindings.Flows)
	assert.Equal(t, []string{domain.DomainFlows}, r.Skipped)
	assert.Equal(t, []string{domain.DomainNaming, domain.DomainValidation, domain.DomainTriggers, domain.DomainFlows}, md.calls)
}

func TestAnalysisService_SkipDomain(t *testing.T) {
	md := sampleMetadata()
	cfg := domain.DefaultConfig()
	cfg.Skip = []string{domain.DomainTriggers}
	svc := newService(cfg, md, nil)

	r, err := svc.AnalyzeProject("/project")
	require.NoError(t, err)

	assert.Nil(t, r.DetailedFindings.Triggers)
	assert.NotContains(t, md.calls, domain.DomainTriggers)
	assert.Contains(t, r.Skipped, domain.DomainTriggers)
	assert.Empty(t, r.CommitHash)
}

func TestAnalysisService_AnalyzeProjectSkipsCommitOutsideRepo(t *testing.T) {
	lookups := 0
	svc := newService(domain.DefaultConfig(), sampleMetadata(),
		fakeCommits{hash: "abc1234", noRepo: true, lookups: &lookups})

	r, err := svc.AnalyzeProject("/project")
	require.NoError(t, err)
	assert.Empty(t, r.CommitHash)
	assert.Zero(t, lookups, "commit lookup should be skipped outside a git repository")
}

func TestAnalysisService_IgnoreGlobs(t *testing.T) {
	md := sampleMetadata()
	cfg := domain.DefaultConfig()
	cfg.Ignore = []string{"Legacy_*", "customField__c"}
	svc := newService(cfg, md, nil)

	loaded, err := svc.LoadMetadata("/project")
	require.NoError(t, err)
	require.Len(t, loaded.Fields, 1)
	assert.Equal(t, "nc_Loan_Score__c", loaded.Fields[0].APIName)

	r, err := svc.AnalyzeProject("/project")
	require.NoError(t, err)
	assert.Equal(t, 100, r.DetailedFindings.NamingConventions.CompliancePercentage)
}

func TestAnalysisService_AllIgnoredIsSkipped(t *testing.T) {
	md := sampleMetadata()
	cfg := domain.DefaultConfig()
	cfg.Ignore = []string{"VR_*"}
	svc := newService(cfg, md, nil)

	r, err := svc.AnalyzeProject("/project")
	require.NoError(t, err)
	assert.Nil(t, r.DetailedFindings.ValidationRules)
	assert.Contains(t, r.Skipped, domain.DomainValidation)
}

func TestAnalysisService_NoSourcesIsEmptyReport(t *testing.T) {
	svc := newService(domain.ProjectConfig{}, &fakeMetadata{}, nil)

	r, err := svc.AnalyzeProject("/project")
	require.NoError(t, err)
	assert.Equal(t, domain.RatingNotAvailable, r.OverallScore.Rating)
	assert.Empty(t, r.Skipped)
}

func TestAnalysisService_ConfigError(t *testing.T) {
	svc := application.NewAnalysisService(fakeConfig{err: errors.New("boom")}, &fakeMetadata{}, nil)

	_, err := svc.AnalyzeProject("/project")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestAnalysisService_MetadataError(t *testing.T) {
	svc := newService(domain.DefaultConfig(), &fakeMetadata{err: errors.New("disk")}, nil)

	_, err := svc.AnalyzeProject("/project")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading fields")
}

func TestAnalysisService_CommitErrorIgnored(t *testing.T) {
	svc := newService(domain.DefaultConfig(), sampleMetadata(), fakeCommits{err: errors.New("not a repo")})

	r, err := svc.AnalyzeProject("/project")
	require.NoError(t, err)
	assert.Empty(t, r.CommitHash)
}

func TestAnalysisService_AnalyzeFieldsWrapsInvalidInput(t *testing.T) {
	svc := newService(domain.DefaultConfig(), &fakeMetadata{}, nil)

	_, err := svc.AnalyzeFields(nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.AnalyzeValidationRules(nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.AnalyzeTriggers(nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.AnalyzeFlows(nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAnalysisService_UniqueReportIDs(t *testing.T) {
	svc := newService(domain.DefaultConfig(), sampleMetadata(), nil)

	a, err := svc.AnalyzeProject("/project")
	require.NoError(t, err)
	b, err := svc.AnalyzeProject("/project")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.OverallScore, b.OverallScore)
}

func TestAnalysisService_Fixture(t *testing.T) {
	svc := application.NewAnalysisService(config.New(), metadata.New(), nil)

	r, err := svc.AnalyzeProject(fixtureDir)
	require.NoError(t, err)

	require.NotNil(t, r.DetailedFindings.NamingConventions)
	require.NotNil(t, r.DetailedFindings.ValidationRules)
	require.NotNil(t, r.DetailedFindings.Triggers)
	require.NotNil(t, r.DetailedFindings.Flows)
	assert.Empty(t, r.Skipped)
	assert.GreaterOrEqual(t, r.OverallScore.Score, 0)
	assert.LessOrEqual(t, r.OverallScore.Score, 100)
	assert.NotEqual(t, domain.RatingNotAvailable, r.OverallScore.Rating)
}
