package dialog

// Fixed reply texts.
const (
	TextWelcome = "Привет! Я помогу вам с рецептами. " +
		"Вы можете сказать: 'добавь рецепт', 'что приготовить из', " +
		"'как приготовить [блюдо]' или 'помощь'."

	TextHelp = "Я умею работать с рецептами:\n" +
		"- Добавлять рецепты: 'Добавь рецепт [название] с ингредиентами [ингредиенты]'\n" +
		"- Добавлять действия: 'Добавить действия для готовки [название]: [шаг 1]; [шаг 2]'\n" +
		"- Удалять рецепты: 'Удали рецепт [название]'\n" +
		"- Искать рецепты по ингредиентам: 'Что приготовить из [ингредиенты]'\n" +
		"- Показывать рецепт: 'Как приготовить [название]'\n" +
		"- Показывать нужные ингредиенты: 'Что нужно для [название]'\n" +
		"- Показывать рецепты: 'Все рецепты' или 'Сколько рецептов'"

	TextGreeting     = "Снова здравствуйте! Чем могу помочь с рецептами?"
	TextUnknown      = "Я не поняла команду. Скажите 'помощь' для списка команд."
	TextStoreFailure = "Извините, что-то пошло не так. Попробуйте ещё раз."
	TextNothingFound = "Не нашла рецептов, которые можно приготовить только из этих ингредиентов."
	TextNoRecipes    = "Рецептов пока нет."
)

// Guidance shown when a command was recognized but its arguments were not.
const (
	GuideAddRecipe    = "Чтобы добавить рецепт, скажите: 'Добавь рецепт [название] с ингредиентами [ингредиент], [ингредиент]'."
	GuideAddSteps     = "Чтобы добавить действия, скажите: 'Добавить действия для готовки [название]: [шаг 1]; [шаг 2]'."
	GuideDelete       = "Назовите рецепт, например: 'Удали рецепт блины'."
	GuideFind         = "Назовите ингредиенты, например: 'Что приготовить из мука, яйца, молоко'."
	GuideInstructions = "Назовите блюдо, например: 'Как приготовить блины'."
	GuideIngredients  = "Назовите блюдо, например: 'Что нужно для блины'."
)

const (
	fmtRecipeAdded   = "Рецепт '%s' добавлен. Ингредиенты: %s."
	fmtRecipeAddedNo = "Рецепт '%s' добавлен без ингредиентов."
	fmtRecipeExists  = "Рецепт '%s' уже существует."
	fmtNotFound      = "Рецепт '%s' не найден."
	fmtStepsSaved    = "Действия для рецепта '%s' сохранены. Шагов: %d."
	fmtDeleted       = "Рецепт '%s' удалён."
	fmtFound         = "Из этих ингредиентов можно приготовить: %s."
	fmtInstructions  = "Как приготовить '%s':\n%s"
	fmtIngredients   = "Для '%s' нужно: %s."
	fmtNoIngredients = "Для '%s' ингредиенты не указаны."
	fmtList          = "Ваши рецепты: %s."
	fmtCount         = "Всего рецептов: %d."
)
