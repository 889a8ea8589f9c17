package types

// Component names an optional installable module of the editor.
type Component string

const (
	ComponentAndroid            Component = "android"
	ComponentAndroidSdkNdkTools Component = "android-sdk-ndk-tools"
	ComponentAndroidOpenJdk     Component = "android-open-jdk"
	ComponentIos                Component = "ios"
	ComponentTvOs               Component = "tv-os"
	ComponentWebGl              Component = "webgl"
	ComponentLinux              Component = "linux"
	ComponentLinuxMono          Component = "linux-mono"
	ComponentLinuxIl2cpp        Component = "linux-il2cpp"
	ComponentMac                Component = "mac"
	ComponentMacMono            Component = "mac-mono"
	ComponentMacIl2cpp          Component = "mac-il2cpp"
	ComponentWindows            Component = "windows"
	ComponentWindowsMono        Component = "windows-mono"
	ComponentWindowsIl2cpp      Component = "windows-il2cpp"
	ComponentUwp                Component = "uwp"
	ComponentLumin              Component = "lumin"
	ComponentDocumentation      Component = "documentation"
	ComponentStandardAssets     Component = "standard-assets"
	ComponentExampleProject     Component = "example-project"
	ComponentVisualStudio       Component = "visual-studio"
	ComponentLanguageJa         Component = "language-ja"
	ComponentLanguageKo         Component = "language-ko"
	ComponentLanguageZhCn       Component = "language-zh-cn"
)

// KnownComponents lists every component tag the manager understands.
var KnownComponents = []Component{
	ComponentAndroid,
	ComponentAndroidSdkNdkTools,
	ComponentAndroidOpenJdk,
	ComponentIos,
	ComponentTvOs,
	ComponentWebGl,
	ComponentLinux,
	ComponentLinuxMono,
	ComponentLinuxIl2cpp,
	ComponentMac,
	ComponentMacMono,
	ComponentMacIl2cpp,
	ComponentWindows,
	ComponentWindowsMono,
	ComponentWindowsIl2cpp,
	ComponentUwp,
	ComponentLumin,
	ComponentDocumentation,
	ComponentStandardAssets,
	ComponentExampleProject,
	ComponentVisualStudio,
	ComponentLanguageJa,
	ComponentLanguageKo,
	ComponentLanguageZhCn,
}

// ReleaseType is the single-letter release tag of an editor version.
type ReleaseType byte

const (
	ReleaseTypeNone  ReleaseType = 0
	ReleaseTypeAlpha ReleaseType = 'a'
	ReleaseTypeBeta  ReleaseType = 'b'
	ReleaseTypeFinal ReleaseType = 'f'
	ReleaseTypePatch ReleaseType = 'p'
)

// Rank orders release types: none < alpha < beta < final < patch.
func (r ReleaseType) Rank() int {
	switch r {
	case ReleaseTypeAlpha:
		return 1
	case ReleaseTypeBeta:
		return 2
	case ReleaseTypeFinal:
		return 3
	case ReleaseTypePatch:
		return 4
	default:
		return 0
	}
}

type ResolutionStatus string

const (
	ResolutionNotFound     ResolutionStatus = "not-found"
	ResolutionSatisfied    ResolutionStatus = "satisfied"
	ResolutionNeedsInstall ResolutionStatus = "needs-install"
)
