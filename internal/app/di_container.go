package app

import (
	"github.com/allisson/containertoken/internal/container/repository/memory"
	containerUseCase "github.com/allisson/containertoken/internal/container/usecase"
)

// ContainerRepository returns the container registry repository instance.
func (c *Container) ContainerRepository() containerUseCase.ContainerRepository {
	c.containerRepoInit.Do(func() {
		c.containerRepo = memory.NewContainerRepository()
	})
	return c.containerRepo
}

// ContainerUseCase returns the container use case instance, decorated with metrics.
func (c *Container) ContainerUseCase() (containerUseCase.ContainerUseCase, error) {
	c.containerUCInit.Do(func() {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["containerUseCase"] = err
			return
		}

		useCase := containerUseCase.NewContainerUseCase(c.ContainerRepository())
		c.containerUC = containerUseCase.NewContainerUseCaseWithMetrics(useCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["containerUseCase"]; exists {
		return nil, storedErr
	}
	return c.containerUC, nil
}
