// Package genx is the generation and patching engine behind hatch.
//
// Overview:
//   - Responsibility: Turn a generator definition plus user answers into file-system mutations
//   - Key Types: Generator, Action (CreateFiles, AppendLine, PatchAtHook), Registry, Runner, Report
//   - Concurrency Model: A run is sequential; Registry is read-only after loading; Runner is stateless between runs
//   - Error Semantics: Coded errors from core/errors, wrapped in *ActionError with the failing index
//   - Performance Notes: Whole-file reads and atomic rewrites; no caching across runs
//
// Actions execute strictly in declared order and a run halts on the first
// failure. Files touched by earlier actions stay as they are; there is no
// rollback. PatchAtHook never consumes its anchor and inserts right after
// each match, so repeated insertions stack with the newest text nearest the
// anchor.
//
// Usage:
//
//	reg := genx.NewRegistry()
//	hook, _ := genx.NewPatchAtLiteralHook("src/lib.rs", "//##PLOP USE RESOURCE HOOK##",
//	  "\nuse resources::{{snakeCase .resource_name}};")
//	_ = reg.Register(genx.Generator{Name: "add-resource", Actions: []genx.Action{hook}})
//
//	runner, _ := genx.NewRunner(reg, genx.Options{ProjectRoot: ".", Logger: logger})
//	report, err := runner.Run(ctx, "add-resource", genx.NewAnswers(map[string]string{"resource_name": "worker"}))
package genx
