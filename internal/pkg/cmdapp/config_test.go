package cmdapp

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "test",
		Long:  `test`,
		Run:   run}
}

func run(cmd *cobra.Command, args []string) {
	Log.Info("Starting summarizeService")
}

func TestReadEnvironmentVariable(t *testing.T) {
	t.Setenv("GROQ_URL", "olia")
	InitApplication(newRootCmd())

	assert.Equal(t, "olia", Config.GetString("groq.url"))
}

func TestReadConfig(t *testing.T) {
	initAppFromTempFile(t, "summarizer:\n     model: olia\n")

	assert.Equal(t, "olia", Config.GetString("summarizer.model"))
}

func TestEnvBeatsConfig(t *testing.T) {
	t.Setenv("SUMMARIZER_MODEL", "xxxx")
	initAppFromTempFile(t, "summarizer:\n     model: olia\n")

	assert.Equal(t, "xxxx", Config.GetString("summarizer.model"))
}

func TestReadsEnvFile(t *testing.T) {
	InitApplication(newRootCmd())
	f, err := os.CreateTemp("", "test.*.env")
	require.Nil(t, err)
	defer os.Remove(f.Name())
	_, err = f.WriteString("TRANSCRIBER_MODEL=whisper-olia\n")
	require.Nil(t, err)
	require.Nil(t, f.Close())
	t.Cleanup(func() { os.Unsetenv("TRANSCRIBER_MODEL") })

	loadEnvFile(f.Name())

	assert.Equal(t, "whisper-olia", Config.GetString("transcriber.model"))
}

func TestEnvFileDoesNotOverride(t *testing.T) {
	InitApplication(newRootCmd())
	f, err := os.CreateTemp("", "test.*.env")
	require.Nil(t, err)
	defer os.Remove(f.Name())
	_, err = f.WriteString("TRANSCRIBER_MODEL=whisper-olia\n")
	require.Nil(t, err)
	require.Nil(t, f.Close())
	t.Setenv("TRANSCRIBER_MODEL", "whisper-env")

	loadEnvFile(f.Name())

	assert.Equal(t, "whisper-env", Config.GetString("transcriber.model"))
}

func TestMissingEnvFile(t *testing.T) {
	assert.NotPanics(t, func() { loadEnvFile("/not/existing/.env") })
	assert.NotPanics(t, func() { loadEnvFile("") })
}

func TestDefaultLogger(t *testing.T) {
	initDefaultLevel()
	initAppFromTempFile(t, "")

	assert.Equal(t, "info", Log.GetLevel().String())
}

func TestLoggerInitFromConfig(t *testing.T) {
	initDefaultLevel()
	initAppFromTempFile(t, "logger:\n    level: trace\n")

	assert.Equal(t, "trace", Log.GetLevel().String())
}

func TestCheckOrPanic(t *testing.T) {
	assert.NotPanics(t, func() { CheckOrPanic(nil, "msg") })
	assert.Panics(t, func() { CheckOrPanic(assert.AnError, "") })
	assert.PanicsWithError(t, "msg: "+assert.AnError.Error(), func() { CheckOrPanic(assert.AnError, "msg") })
}

func initAppFromTempFile(t *testing.T, data string) {
	t.Helper()
	f, err := os.CreateTemp("", "test.*.yml")
	require.Nil(t, err)
	_, err = f.WriteString(data)
	require.Nil(t, err)
	f.Sync()

	defer os.Remove(f.Name())

	rootCmd := newRootCmd()
	InitApplication(rootCmd)
	configFile = f.Name()
	envFile = ""
	rootCmd.SetArgs([]string{})
	require.Nil(t, rootCmd.Execute())
}

func initDefaultLevel() {
	Log.SetLevel(logrus.ErrorLevel)
}
