package templates

// Placeholder заменяется названием вакансии.
const Placeholder = "{#vacancyName}"

// DefaultSelected - шаблон, выбранный при первом запуске.
const DefaultSelected = "coverLetter_1"

// Defaults возвращает встроенные шаблоны сопроводительных писем.
func Defaults() map[string]string {
	return map[string]string{
		"coverLetter_1": "Добрый день!\n\nМеня заинтересовала предложенная Вами вакансия {#vacancyName}. Ознакомившись с перечнем требований к кандидатам, пришел к выводу, что мой опыт работы позволяют мне претендовать на данную должность.\n\nОбладаю высоким уровнем разработки, свободно говорю по-английски. В работе ответствен, пунктуален и коммуникабелен.\n\nБуду с нетерпением ждать ответа и возможности обсудить условия работы и взаимные ожидания на собеседовании. Спасибо, что уделили время.\n\nКонтактные данные прилагаю.",
		"coverLetter_2": "Здравствуйте!\n\nС интересом рассмотрел вашу вакансию {#vacancyName}.\n\nИмею более 5 лет опыта в разработке, работал с современным стеком технологий. Успешно реализовал множество проектов различной сложности.\n\nВ работе ценю профессиональное развитие, интересные задачи и возможность приносить реальную пользу бизнесу. Готов к новым вызовам и уверен, что смогу быть полезен вашей команде.\n\nС удовольствием обсужу детали на собеседовании.\n\nС уважением.",
		"coverLetter_3": "Добрый день!\n\nМеня заинтересовала позиция {#vacancyName} в вашей компании.\n\nМой опыт включает разработку высоконагруженных систем, оптимизацию производительности и внедрение современных практик разработки. Владею полным циклом разработки ПО.\n\nГотов применить свои знания и навыки для решения задач вашей компании.\n\nБуду рад встрече!",
		"coverLetter_4": "Приветствую!\n\nВакансия {#vacancyName} полностью соответствует моим профессиональным компетенциям и карьерным целям.\n\nВ своей работе я всегда стремлюсь к качественному результату, постоянно развиваюсь и слежу за новыми технологиями. Имею опыт работы как самостоятельно, так и в команде.\n\nУверен, что мой опыт и навыки позволят эффективно решать поставленные задачи.\n\nЖду возможности обсудить сотрудничество.",
		"coverLetter_5": "Добрый день!\n\nОбращаюсь по поводу вакансии {#vacancyName}.\n\nВаше предложение привлекло меня возможностью работать с передовыми технологиями и развиваться в профессиональной среде.\n\nГотов внести свой вклад в развитие компании и с энтузиазмом взяться за новые вызовы.\n\nБлагодарю за рассмотрение!",
	}
}
