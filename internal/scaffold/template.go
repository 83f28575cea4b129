// Package scaffold creates and removes day packages and writes the
// workspace files produced by `advent init`.
package scaffold

// ConfigTemplate is written to advent.yaml by `advent init`.
// It must decode to config.Default().
const ConfigTemplate = `# advent workspace configuration
version: 1

# Run inside <root>/<year>; must create day-<day>.
generator:
  command: [cargo, generate, --path, ../daily-template, --name, "day-{{day}}", --define, "year={{year}}", --define, "day={{day}}"]

# Run from <root>; non-zero exit rolls back the new day directory.
fetch:
  command: [./scripts/get-aoc-input.sh, "{{year}}", "day-{{day}}", --cwd, "{{root}}", --timeout, "{{timeout}}"]
  timeout_seconds: 60

# Placeholders: {{year}} {{day}} {{part}} {{package}} {{root}} {{day_dir}}
tasks:
  check: [cargo, clippy, --workspace, --all-targets]
  fix: [cargo, clippy, --workspace, --all-targets, --fix, --allow-dirty, --allow-staged]
  test: [cargo, nextest, run, -p, "{{package}}"]
  run: [cargo, run, -p, "{{package}}", --bin, "part{{part}}"]
  bench: [cargo, bench, -p, "{{package}}"]
  profile: [cargo, flamegraph, --profile, flamegraph, --root, -p, "{{package}}", --bin, "part{{part}}", -o, "flamegraphs/{{year}}-day-{{day}}-part{{part}}.svg"]
`
