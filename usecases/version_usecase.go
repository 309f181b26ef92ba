package usecases

type VersionUsecase struct {
	ApiVersion string
}
