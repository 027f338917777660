package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"lox/internal/ast"
	"lox/internal/diag"
	"lox/internal/observ"
	"lox/internal/resolve"
	"lox/internal/source"
	"lox/internal/trace"
)

// CheckFilesOptions configures CheckFiles.
type CheckFilesOptions struct {
	MaxDiagnostics int
	Jobs           int // 0 = GOMAXPROCS
	Cache          *DiskCache
	Progress       ProgressSink
	EnableTimings  bool
}

// CheckFileResult содержит результат проверки одного файла
type CheckFileResult struct {
	Path    string        // путь, как он был найден
	FileID  source.FileID // ID файла в общем FileSet
	Bag     *diag.Bag
	Builder *ast.Builder // nil для результатов из кеша и ошибок загрузки
	ASTFile ast.FileID
	Locals  resolve.Locals
	Cached  bool
	Timing  *observ.Report
}

// ListLoxFiles expands paths into a sorted, de-duplicated list of *.lox
// files; directories are walked recursively.
func ListLoxFiles(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, ".lox") {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckFiles parses and resolves every file in parallel. Each file gets its
// own AST builder, so results are independent of scheduling; the FileSet is
// filled up front and only read by the workers.
func CheckFiles(ctx context.Context, paths []string, opts CheckFilesOptions) (*source.FileSet, []CheckFileResult, error) {
	files, err := ListLoxFiles(paths)
	if err != nil {
		return nil, nil, err
	}

	ctx, span := trace.Start(ctx, trace.ScopePass, "check_files")
	defer span.End(fmt.Sprintf("files=%d", len(files)))

	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Предзагрузка: FileSet не потокобезопасен на запись
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			// пустой виртуальный файл, чтобы диагностике было на что указать
			fileID = fileSet.AddVirtual(path, nil)
			loadErrors[path] = err
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]CheckFileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			fileID := fileIDs[path]
			bag := diag.NewBag(opts.MaxDiagnostics)
			results[i] = CheckFileResult{Path: path, FileID: fileID, Bag: bag}

			if loadErr, failed := loadErrors[path]; failed {
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
					Primary:  source.Span{File: fileID},
				})
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}

			return checkOne(trace.WithLane(gctx, uint32(i+1)), fileSet, fileID, &results[i], opts)
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func checkOne(ctx context.Context, fileSet *source.FileSet, fileID source.FileID, res *CheckFileResult, opts CheckFilesOptions) error {
	file := fileSet.Get(fileID)
	started := time.Now()

	ctx, fileSpan := trace.Start(ctx, trace.ScopeFile, "file "+res.Path)
	defer fileSpan.End("")

	key := CheckKey(file.Hash, opts.MaxDiagnostics)
	if opts.Cache != nil {
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err == nil && hit && payload.ContentHash == file.Hash {
			restoreBag(&payload, fileID, res.Bag)
			res.Cached = true
			fileSpan.WithExtra("cached", "true")
			emit(opts.Progress, Event{File: res.Path, Stage: StageResolve, Status: StatusCached, Elapsed: time.Since(started)})
			return nil
		}
	}

	emit(opts.Progress, Event{File: res.Path, Stage: StageParse, Status: StatusWorking})
	ph := newPhases(ctx, opts.EnableTimings, func(ev PhaseEvent) {
		if ev.Status == PhaseStart && ev.Name == "resolve" {
			emit(opts.Progress, Event{File: res.Path, Stage: StageResolve, Status: StatusWorking})
		}
	})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	out, err := checkFile(ph, fileSet, file, builder, res.Bag, opts.MaxDiagnostics)
	if err != nil {
		return err
	}
	res.Builder = builder
	res.ASTFile = out.file
	res.Locals = out.locals
	if ph.timer != nil {
		report := ph.timer.Report()
		res.Timing = &report
	}

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, payloadFromBag(file, res.Bag)); err != nil {
			return fmt.Errorf("cache %s: %w", res.Path, err)
		}
	}

	status := StatusDone
	if res.Bag.HasErrors() {
		status = StatusError
	}
	emit(opts.Progress, Event{File: res.Path, Stage: StageResolve, Status: status, Elapsed: time.Since(started)})
	return nil
}
