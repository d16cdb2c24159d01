// Package driver runs the resolver over a whole database: every interface
// is resolved in parallel against one shared registry and the results are
// collected into a Report.
package driver

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"idlbind/internal/annot"
	"idlbind/internal/diag"
	"idlbind/internal/idl"
	"idlbind/internal/observ"
	"idlbind/internal/ops"
	"idlbind/internal/trace"
	"idlbind/internal/types"
	"idlbind/internal/typetable"
)

// Options configures Run. Zero values select the defaults.
type Options struct {
	Library string
	Jobs    int

	Table       *typetable.Table
	Renamer     idl.Renamer
	Docs        idl.DocStore
	Conversions *annot.Conversions

	// Cache and Key enable snapshots; both must be set.
	Cache *DiskCache
	Key   Digest

	Reporter diag.Reporter
	Progress ProgressSink
}

func (o *Options) defaults() {
	if o.Jobs <= 0 {
		o.Jobs = runtime.GOMAXPROCS(0)
	}
	if o.Table == nil {
		o.Table = typetable.Default()
	}
	if o.Renamer == nil {
		o.Renamer = idl.NewDefaultRenamer()
	}
	if o.Docs == nil {
		o.Docs = idl.NopDocStore{}
	}
	if o.Conversions == nil {
		o.Conversions = annot.DefaultConversions()
	}
	if o.Reporter == nil {
		o.Reporter = diag.NopReporter{}
	}
}

// Run resolves every interface of db. The first configuration error
// cancels the remaining work and is returned.
func Run(ctx context.Context, db idl.Database, opts Options) (*Report, error) {
	opts.defaults()
	ctx, span := trace.Start(ctx, trace.ScopePass, "resolve")
	defer span.End("")

	useCache := opts.Cache != nil && !opts.Key.IsZero()
	if useCache {
		report, ok, err := opts.Cache.Get(opts.Key)
		if err != nil {
			diag.ReportWarning(opts.Reporter, diag.RunCacheWriteFail, opts.Key.String(), err.Error())
		}
		if ok {
			diag.ReportInfo(opts.Reporter, diag.RunCacheHit, opts.Key.String(), "resolution served from cache")
			span.Set("cache", "hit")
			report.Cached = true
			return report, nil
		}
	}

	timer := observ.NewTimer()
	r := newRun(db, opts)

	interfaces := db.Interfaces()
	for _, iface := range interfaces {
		emit(opts.Progress, Event{Interface: iface.ID, Stage: StageTypes, Status: StatusQueued})
	}

	results := make([]InterfaceReport, len(interfaces))
	err := timer.Time("interfaces", func() error {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(max(1, min(opts.Jobs, len(interfaces))))
		for i, iface := range interfaces {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				started := time.Now()
				out, err := r.resolveInterface(gctx, iface)
				if err != nil {
					emit(opts.Progress, Event{Interface: iface.ID, Status: StatusError, Err: err, Elapsed: time.Since(started)})
					return err
				}
				results[i] = out
				emit(opts.Progress, Event{Interface: iface.ID, Status: StatusDone, Elapsed: time.Since(started)})
				return nil
			})
		}
		return g.Wait()
	})
	if err != nil {
		span.Set("error", err.Error())
		return nil, err
	}

	report := &Report{Library: opts.Library, Interfaces: results}
	_ = timer.Time("types", func() error {
		report.Types = r.describeTypes()
		return nil
	})
	report.Timings = timer.Report()
	span.Set("interfaces", fmt.Sprint(len(results))).Set("types", fmt.Sprint(len(report.Types)))

	if useCache {
		if err := opts.Cache.Put(opts.Key, report); err != nil {
			diag.ReportWarning(opts.Reporter, diag.RunCacheWriteFail, opts.Key.String(), err.Error())
		}
	}
	return report, nil
}

// run holds the state shared by the interface workers. Every field is
// either immutable or safe for concurrent use.
type run struct {
	opts      Options
	registry  *types.Registry
	annotator *annot.Annotator
}

func newRun(db idl.Database, opts Options) *run {
	var exempt annot.Exemptions
	if e, ok := opts.Renamer.(annot.Exemptions); ok {
		exempt = e
	}
	return &run{
		opts:      opts,
		registry:  types.NewRegistry(db, opts.Renamer, opts.Table),
		annotator: annot.NewAnnotator(opts.Docs, exempt),
	}
}

func (r *run) resolveInterface(ctx context.Context, iface *idl.Interface) (out InterfaceReport, err error) {
	defer diag.Recover(&err)
	ctx, span := trace.Start(ctx, trace.ScopeInterface, "iface:"+iface.ID)
	defer func() {
		if err != nil {
			span.Set("error", err.Error())
		}
		span.End("")
	}()

	emit(r.opts.Progress, Event{Interface: iface.ID, Stage: StageTypes, Status: StatusWorking})
	d, err := r.registry.Resolve(iface.ID)
	if err != nil {
		return out, err
	}
	out = InterfaceReport{
		ID:             iface.ID,
		Name:           r.opts.Renamer.RenameInterface(iface),
		Target:         d.TargetType(),
		Implementation: d.ImplementationName(),
		MergedInto:     d.MergedInto(),
		Callback:       iface.IsCallback(),
		Annotations:    r.annotator.WithComments(r.opts.Library, iface.ID, ""),
	}
	if d.Kind() == types.KindInterface && !d.HasGeneratedInterface() {
		out.Suppressed = true
		diag.ReportInfo(r.opts.Reporter, diag.RunSkippedIface, iface.ID, "no generated interface; members not resolved")
		return out, nil
	}

	emit(r.opts.Progress, Event{Interface: iface.ID, Stage: StageOperations, Status: StatusWorking})
	if info, ok, err := ops.AnalyzeConstructor(iface, r.registry); err != nil {
		return out, err
	} else if ok {
		sig, err := r.signature(iface, info, "")
		if err != nil {
			return out, err
		}
		out.Constructor = &sig
	}
	if out.Callback {
		info, ok, err := ops.CallbackInfo(iface, r.registry)
		if err != nil {
			return out, err
		}
		if ok {
			sig, err := r.signature(iface, info, info.DeclaredName)
			if err != nil {
				return out, err
			}
			out.Handler = &sig
		}
	}
	for _, id := range iface.OperationNames() {
		info, err := ops.MergeNamed(iface, id, r.registry)
		if err != nil {
			return out, err
		}
		sig, err := r.signature(iface, info, id)
		if err != nil {
			return out, err
		}
		trace.Point(ctx, trace.ScopeMember, "op:"+id, sig.Params)
		out.Operations = append(out.Operations, sig)
	}

	emit(r.opts.Progress, Event{Interface: iface.ID, Stage: StageAttributes, Status: StatusWorking})
	for _, attr := range iface.Attributes {
		if _, _, err := ops.FindMatchingAttribute(iface, attr.ID); err != nil {
			return out, err
		}
		out.Attributes = append(out.Attributes, r.attribute(iface, attr))
		trace.Point(ctx, trace.ScopeMember, "attr:"+attr.ID, attr.Type)
	}
	span.Set("operations", fmt.Sprint(len(out.Operations))).Set("attributes", fmt.Sprint(len(out.Attributes)))
	return out, nil
}

// signature renders info. member names the annotated member; empty for
// constructors.
func (r *run) signature(iface *idl.Interface, info *ops.Info, member string) (Signature, error) {
	rename := r.rename(iface.ID)
	params, err := info.ParametersDeclaration(rename, false)
	if err != nil {
		return Signature{}, err
	}
	static, err := info.IsStatic()
	if err != nil {
		return Signature{}, err
	}
	sig := Signature{
		ID:        info.DeclaredName,
		Name:      info.Name,
		Returns:   rename(info.TypeName),
		Static:    static,
		Params:    params,
		Arguments: info.ParametersAsArgumentList(-1),
		Overloads: len(info.Operations),
	}
	for _, p := range info.Params {
		call, err := r.nativeArg(iface.ID, p.TypeID)
		if err != nil {
			return Signature{}, err
		}
		if call != "" {
			sig.NativeArgs = append(sig.NativeArgs, call)
		}
	}
	if member == "" {
		sig.Returns = info.ConstructorFullName(rename)
		return sig, nil
	}
	sig.Annotations = r.annotator.Native(info.TypeName, r.opts.Library, iface.ID, member)

	future := ops.ToFutureForm(info)
	if len(future.CallbackArgs) > 0 {
		fparams, err := future.ParametersDeclaration(rename, false)
		if err != nil {
			return Signature{}, err
		}
		sig.Future = &Signature{
			ID:        future.DeclaredName,
			Name:      future.Name,
			Returns:   future.TypeName,
			Static:    static,
			Params:    fparams,
			Arguments: future.ParametersAsArgumentList(-1),
			Overloads: len(future.Operations),
		}
	}
	return sig, nil
}

func (r *run) attribute(iface *idl.Interface, attr *idl.Attribute) AttributeReport {
	out := AttributeReport{
		ID:          attr.ID,
		Type:        r.rename(iface.ID)(attr.Type),
		ReadOnly:    attr.ReadOnly,
		Annotations: r.annotator.Native(attr.Type, r.opts.Library, iface.ID, attr.ID),
	}
	if conv, ok := r.opts.Conversions.Find(attr.Type, annot.Get, iface.ID, attr.ID); ok {
		out.Getter = conv.Function
	}
	if !attr.ReadOnly {
		if conv, ok := r.opts.Conversions.Find(attr.Type, annot.Set, iface.ID, attr.ID); ok {
			out.Setter = conv.Function
		}
	}
	return out
}

// nativeArg renders the native conversion of an argument of type id.
// Untyped parameters have none.
func (r *run) nativeArg(owner, id string) (string, error) {
	if id == "" {
		return "", nil
	}
	d, err := r.registry.Resolve(id)
	if err != nil {
		return "", err
	}
	info, err := d.ToNative(nil, owner)
	if err != nil {
		return "", err
	}
	return info.Call(), nil
}

// rename maps raw type ids to exposed names. Resolution errors, unknown ids
// included, panic and are recovered by resolveInterface.
func (r *run) rename(owner string) func(string) string {
	return func(id string) string {
		d, err := r.registry.Resolve(id)
		if err != nil {
			panic(fmt.Errorf("%s: %w", owner, err))
		}
		return d.TargetType()
	}
}

func (r *run) describeTypes() []TypeReport {
	names := r.registry.Names()
	sort.Strings(names)
	out := make([]TypeReport, 0, len(names))
	for _, name := range names {
		if d, ok := r.registry.Lookup(name); ok {
			out = append(out, DescribeType(name, d))
		}
	}
	return out
}
