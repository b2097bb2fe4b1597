package logconf

// Source identifies a log-producing subsystem of the environment.
type Source string

const (
	// SourceTask covers logs emitted by task instances.
	SourceTask Source = "task"
	// SourceDagProcessing covers the DAG processor manager and per-file processors.
	SourceDagProcessing Source = "dag_processing"
	// SourceWorker covers the worker subprocess and its requirements install.
	SourceWorker Source = "worker"
	// SourceScheduler covers the scheduler subprocess and its requirements install.
	SourceScheduler Source = "scheduler"
	// SourceWebserver covers the webserver subprocess and its requirements install.
	SourceWebserver Source = "webserver"
)

// Sources returns every known log source in registration order.
func Sources() []Source {
	return []Source{SourceTask, SourceDagProcessing, SourceWorker, SourceScheduler, SourceWebserver}
}

// SubprocessSources returns the sources that ship through the generic
// subprocess handler, each of which also gets a "<name>_requirements" twin.
func SubprocessSources() []Source {
	return []Source{SourceWorker, SourceScheduler, SourceWebserver}
}

// Shipping holds the per-source parameters resolved from the environment. An
// empty LogGroupARN means no shipping handler is registered for the source.
type Shipping struct {
	LogGroupARN string
	LogLevel    string
	Enabled     bool
}

// Settings is the input to Build: the per-source shipping parameters plus the
// filesystem locations the base configuration references. Zero-value paths
// fall back to the stock Airflow locations.
type Settings struct {
	BaseLogFolder               string
	ProcessorManagerLogLocation string
	ProcessorFilenameTemplate   string
	Sources                     map[Source]Shipping
}

func (s Settings) withDefaults() Settings {
	if s.BaseLogFolder == "" {
		s.BaseLogFolder = DefaultBaseLogFolder
	}
	if s.ProcessorManagerLogLocation == "" {
		s.ProcessorManagerLogLocation = DefaultProcessorManagerLogLocation
	}
	if s.ProcessorFilenameTemplate == "" {
		s.ProcessorFilenameTemplate = DefaultProcessorFilenameTemplate
	}
	return s
}

func (s Settings) shipping(source Source) Shipping {
	ship := s.Sources[source]
	if ship.LogLevel == "" {
		ship.LogLevel = DefaultLogLevel
	}
	return ship
}
