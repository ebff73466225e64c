package cli

// Export internal functions for testing.

// RunPlan exports runPlan for testing.
var RunPlan = runPlan

// ParsePlanOptions exports parsePlanOptions for testing.
var ParsePlanOptions = parsePlanOptions

// PlanFlags exports planFlags for testing.
type PlanFlags = planFlags

// PlanOptions exports planOptions for testing.
type PlanOptions = planOptions

// ClampParallel exports clampParallel for testing.
var ClampParallel = clampParallel

// ResolveParallel exports resolveParallel for testing.
var ResolveParallel = resolveParallel

// OutputPaths exports outputPaths for testing.
var OutputPaths = outputPaths

// DeriveOutputName exports deriveOutputName for testing.
var DeriveOutputName = deriveOutputName

// RunConfigSet exports runConfigSet for testing.
var RunConfigSet = runConfigSet

// RunConfigGet exports runConfigGet for testing.
var RunConfigGet = runConfigGet

// RunConfigList exports runConfigList for testing.
var RunConfigList = runConfigList

// IsValidConfigKey exports isValidConfigKey for testing.
var IsValidConfigKey = isValidConfigKey

// ValidConfigKeys exports validConfigKeys for testing.
var ValidConfigKeys = validConfigKeys
